// Package manifest describes the assets of a game in a YAML or TOML file and
// registers them with an engine.
//
// A manifest in YAML:
//
//	inputs:
//	  left: ArrowLeft
//	  right: ArrowRight
//	sounds:
//	  boom: {source: explosion.wav}
//	textures:
//	  frog: {source: frog.png, filter: nearest}
//	sprites:
//	  player: {texture: frog, atlas: [0, 0, 32, 32]}
//	labels:
//	  fps: {x: 4, y: 4, size: 16, color: "#000000"}
//
package manifest

import (
	"image"
	"path"
	"sort"
	"strings"

	"github.com/db47h/spry"
	"github.com/db47h/spry/input"
	"github.com/db47h/spry/overlay"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrFormat is returned by Load for file names without a known extension.
//
var ErrFormat = errors.New("unknown manifest format")

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Manifest lists assets by name.
//
type Manifest struct {
	Inputs   map[string]string  `yaml:"inputs" toml:"inputs"` // input name to key code
	Sounds   map[string]Sound   `yaml:"sounds" toml:"sounds"`
	Textures map[string]Texture `yaml:"textures" toml:"textures"`
	Sprites  map[string]Sprite  `yaml:"sprites" toml:"sprites"`
	Labels   map[string]Label   `yaml:"labels" toml:"labels"`
}

type Sound struct {
	Source string `yaml:"source" toml:"source"`
	Loop   bool   `yaml:"loop" toml:"loop"`
}

type Texture struct {
	Source string `yaml:"source" toml:"source"`
	Filter string `yaml:"filter" toml:"filter"` // nearest (default) or linear
	Wrap   string `yaml:"wrap" toml:"wrap"`     // clamp (default), repeat or mirror
}

type Sprite struct {
	Texture string    `yaml:"texture" toml:"texture"`
	Atlas   []int     `yaml:"atlas" toml:"atlas"` // x0, y0, x1, y1 in texture pixels
	Size    []float32 `yaml:"size" toml:"size"`   // world size, defaults to the atlas size
}

type Label struct {
	X      float32 `yaml:"x" toml:"x"`
	Y      float32 `yaml:"y" toml:"y"`
	Size   float64 `yaml:"size" toml:"size"`
	Color  string  `yaml:"color" toml:"color"` // #rgb, #rrggbb or #rrggbbaa
	Text   string  `yaml:"text" toml:"text"`
	Hidden bool    `yaml:"hidden" toml:"hidden"`
}

// Load parses a manifest. The format is selected by the extension of name:
// .yaml, .yml or .toml.
//
func Load(name string, data []byte) (*Manifest, error) {
	var (
		m   Manifest
		err error
	)
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	default:
		return nil, errors.Wrap(ErrFormat, name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse manifest %s", name)
	}
	return &m, nil
}

// Rect returns the atlas rectangle of s.
//
func (s Sprite) Rect() (image.Rectangle, error) {
	if len(s.Atlas) != 4 {
		return image.Rectangle{}, errors.Errorf("atlas needs 4 values, got %d", len(s.Atlas))
	}
	r := image.Rect(s.Atlas[0], s.Atlas[1], s.Atlas[2], s.Atlas[3])
	if r.Empty() {
		return image.Rectangle{}, errors.Errorf("empty atlas %v", r)
	}
	return r, nil
}

// Params returns the texture parameters of t.
//
func (t Texture) Params() ([]spry.TextureParameter, error) {
	var ps []spry.TextureParameter
	switch strings.ToLower(t.Filter) {
	case "", "nearest":
	case "linear":
		ps = append(ps, spry.Filter(spry.Linear, spry.Linear))
	default:
		return nil, errors.Errorf("unknown filter %q", t.Filter)
	}
	switch strings.ToLower(t.Wrap) {
	case "", "clamp":
	case "repeat":
		ps = append(ps, spry.Wrap(spry.Repeat, spry.Repeat))
	case "mirror":
		ps = append(ps, spry.Wrap(spry.MirroredRepeat, spry.MirroredRepeat))
	default:
		return nil, errors.Errorf("unknown wrap mode %q", t.Wrap)
	}
	return ps, nil
}

// Overlay returns l as an overlay label.
//
func (l Label) Overlay() (overlay.Label, error) {
	ol := overlay.Label{X: l.X, Y: l.Y, Size: l.Size, Text: l.Text, Hidden: l.Hidden}
	if l.Color != "" {
		c, err := ParseColor(l.Color)
		if err != nil {
			return ol, err
		}
		ol.Color = c
	}
	return ol, nil
}

// Validate checks the references between assets and the syntax of all
// values. It does not open any file.
//
func (m *Manifest) Validate() error {
	var errs errorList
	for _, name := range keys(m.Inputs) {
		if code := m.Inputs[name]; !input.ValidCode(code) {
			errs = append(errs, errors.Errorf("input %q: unknown key code %q", name, code))
		}
	}
	for _, name := range keys(m.Sounds) {
		if m.Sounds[name].Source == "" {
			errs = append(errs, errors.Errorf("sound %q: no source", name))
		}
	}
	for _, name := range keys(m.Textures) {
		t := m.Textures[name]
		if t.Source == "" {
			errs = append(errs, errors.Errorf("texture %q: no source", name))
		}
		if _, err := t.Params(); err != nil {
			errs = append(errs, errors.Wrapf(err, "texture %q", name))
		}
	}
	for _, name := range keys(m.Sprites) {
		s := m.Sprites[name]
		if _, ok := m.Textures[s.Texture]; !ok {
			errs = append(errs, errors.Wrapf(spry.ErrUnknownTexture, "sprite %q: %s", name, s.Texture))
		}
		if _, err := s.Rect(); err != nil {
			errs = append(errs, errors.Wrapf(err, "sprite %q", name))
		}
		if len(s.Size) != 0 && len(s.Size) != 2 {
			errs = append(errs, errors.Errorf("sprite %q: size needs 2 values, got %d", name, len(s.Size)))
		}
	}
	for _, name := range keys(m.Labels) {
		if _, err := m.Labels[name].Overlay(); err != nil {
			errs = append(errs, errors.Wrapf(err, "label %q", name))
		}
	}
	if errs != nil {
		return errs
	}
	return nil
}

// Apply validates m and registers its assets with e, in this order: inputs,
// sounds, textures, sprites and labels. Within each kind, assets are
// registered by name.
//
func (m *Manifest) Apply(e *spry.Engine) error {
	if err := m.Validate(); err != nil {
		return err
	}
	for _, name := range keys(m.Inputs) {
		e.RegisterInput(name, m.Inputs[name])
	}
	for _, name := range keys(m.Sounds) {
		s := m.Sounds[name]
		if err := e.RegisterSound(name, s.Source, s.Loop); err != nil {
			return err
		}
	}
	for _, name := range keys(m.Textures) {
		t := m.Textures[name]
		ps, _ := t.Params()
		if err := e.RegisterTexture(name, t.Source, ps...); err != nil {
			return err
		}
	}
	for _, name := range keys(m.Sprites) {
		s := m.Sprites[name]
		r, _ := s.Rect()
		if len(s.Size) == 2 {
			e.RegisterSpriteSize(name, s.Texture, r, spry.Pt(s.Size[0], s.Size[1]))
		} else {
			e.RegisterSprite(name, s.Texture, r)
		}
	}
	for _, name := range keys(m.Labels) {
		l, _ := m.Labels[name].Overlay()
		e.AddLabel(name, l)
	}
	return nil
}

func keys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
