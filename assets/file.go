package assets

import (
	"io"

	"github.com/pkg/errors"
)

// ReadFile synchronously reads the named file, relative to the file system
// root.
//
func (m *Manager) ReadFile(name string) ([]byte, error) {
	r, err := m.fs.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return data, nil
}

// ReadSound reads the named file from the sound path.
//
func (m *Manager) ReadSound(name string) ([]byte, error) {
	return m.ReadFile(m.soundPath(name))
}
