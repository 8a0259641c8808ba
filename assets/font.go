package assets

import (
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
)

// Font reads and parses the named TrueType font from the font path.
//
func (m *Manager) Font(name string) (*truetype.Font, error) {
	data, err := m.ReadFile(m.fontPath(name))
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse font %s", name)
	}
	return f, nil
}
