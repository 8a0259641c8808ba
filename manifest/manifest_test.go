package manifest

import (
	"image"
	"image/color"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/db47h/ofs"
	"github.com/db47h/spry"
	"github.com/db47h/spry/assets"
	"github.com/pkg/errors"
)

const yamlManifest = `
inputs:
  left: ArrowLeft
  right: ArrowRight
textures:
  frog: {source: frog.png}
  font: {source: font.png, filter: linear, wrap: repeat}
sprites:
  player: {texture: frog, atlas: [0, 0, 32, 32]}
  big: {texture: frog, atlas: [32, 0, 64, 32], size: [64, 64]}
labels:
  fps: {x: 4, y: 8, size: 12, color: "#ff000080", text: "FPS"}
`

const tomlManifest = `
[inputs]
left = "ArrowLeft"
right = "ArrowRight"

[textures.frog]
source = "frog.png"

[textures.font]
source = "font.png"
filter = "linear"
wrap = "repeat"

[sprites.player]
texture = "frog"
atlas = [0, 0, 32, 32]

[sprites.big]
texture = "frog"
atlas = [32, 0, 64, 32]
size = [64.0, 64.0]

[labels.fps]
x = 4.0
y = 8.0
size = 12.0
color = "#ff000080"
text = "FPS"
`

func TestLoad(t *testing.T) {
	y, err := Load("game.yaml", []byte(yamlManifest))
	if err != nil {
		t.Fatal(err)
	}
	tm, err := Load("game.toml", []byte(tomlManifest))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(y, tm) {
		t.Fatalf("YAML and TOML differ:\n%+v\n%+v", y, tm)
	}
	if s := y.Sprites["big"]; !reflect.DeepEqual(s.Size, []float32{64, 64}) || s.Texture != "frog" {
		t.Fatalf("sprite big: got %+v", s)
	}
	if err := y.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("game.json", nil); errors.Cause(err) != ErrFormat {
		t.Fatalf("got %v, want %v", err, ErrFormat)
	}
	if _, err := Load("game.yml", []byte("inputs: [")); err == nil {
		t.Fatal("expected YAML syntax error")
	}
	if _, err := Load("game.toml", []byte("[inputs")); err == nil {
		t.Fatal("expected TOML syntax error")
	}
}

func TestValidate(t *testing.T) {
	for _, td := range []struct {
		name string
		m    Manifest
	}{
		{"bad code", Manifest{Inputs: map[string]string{"jump": "Spacebar"}}},
		{"no sound source", Manifest{Sounds: map[string]Sound{"boom": {}}}},
		{"no texture source", Manifest{Textures: map[string]Texture{"t": {}}}},
		{"bad filter", Manifest{Textures: map[string]Texture{"t": {Source: "t.png", Filter: "cubic"}}}},
		{"missing texture", Manifest{Sprites: map[string]Sprite{"s": {Texture: "t", Atlas: []int{0, 0, 1, 1}}}}},
		{"short atlas", Manifest{
			Textures: map[string]Texture{"t": {Source: "t.png"}},
			Sprites:  map[string]Sprite{"s": {Texture: "t", Atlas: []int{0, 0, 1}}},
		}},
		{"empty atlas", Manifest{
			Textures: map[string]Texture{"t": {Source: "t.png"}},
			Sprites:  map[string]Sprite{"s": {Texture: "t", Atlas: []int{4, 4, 4, 8}}},
		}},
		{"bad size", Manifest{
			Textures: map[string]Texture{"t": {Source: "t.png"}},
			Sprites:  map[string]Sprite{"s": {Texture: "t", Atlas: []int{0, 0, 1, 1}, Size: []float32{1}}},
		}},
		{"bad color", Manifest{Labels: map[string]Label{"l": {Color: "red"}}}},
	} {
		t.Run(td.name, func(t *testing.T) {
			if err := td.m.Validate(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	for _, td := range []struct {
		s    string
		want color.NRGBA
		ok   bool
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}, true},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}, true},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}, true},
		{"102030", color.NRGBA{}, false},
		{"#1020", color.NRGBA{}, false},
		{"#zzzzzz", color.NRGBA{}, false},
	} {
		t.Run(td.s, func(t *testing.T) {
			c, err := ParseColor(td.s)
			if (err == nil) != td.ok {
				t.Fatalf("error: %v", err)
			}
			if c != td.want {
				t.Fatalf("got %v, want %v", c, td.want)
			}
		})
	}
}

type nopDevice struct{ next spry.TextureID }

func (d *nopDevice) CreateTexture() (spry.TextureID, error) {
	d.next++
	return d.next, nil
}
func (d *nopDevice) UploadTexture(spry.TextureID, int, int, []byte, spry.TextureParams) {}
func (d *nopDevice) DeleteTexture(spry.TextureID)                                      {}
func (d *nopDevice) BindTexture(int, spry.TextureID)                                   {}
func (d *nopDevice) UploadBuffer(spry.Stream, []float32)                               {}
func (d *nopDevice) Draw(int)                                                          {}
func (d *nopDevice) Clear()                                                            {}
func (d *nopDevice) SetView(float32, float32, float32, float32)                        {}

func TestApply(t *testing.T) {
	m, err := Load("game.yaml", []byte(yamlManifest))
	if err != nil {
		t.Fatal(err)
	}
	var fs ofs.Overlay
	if err := fs.Add(false, t.TempDir()); err != nil {
		t.Fatal(err)
	}
	e, err := spry.New(&nopDevice{}, 320, 240,
		spry.WithLogger(log.New(io.Discard)),
		spry.WithLoader(assets.NewManager(&fs)))
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if err := m.Apply(e); err != nil {
		t.Fatal(err)
	}
	if c, ok := e.Input().Code("left"); !ok || c != "ArrowLeft" {
		t.Fatalf("input left: got %q", c)
	}
	if e.Textures().Len() != 2 {
		t.Fatalf("got %d textures, want 2", e.Textures().Len())
	}
	for _, td := range []struct {
		name string
		want spry.Sprite
	}{
		{"player", spry.Sprite{Texture: "frog", Atlas: image.Rect(0, 0, 32, 32), Size: spry.Pt(32, 32)}},
		{"big", spry.Sprite{Texture: "frog", Atlas: image.Rect(32, 0, 64, 32), Size: spry.Pt(64, 64)}},
	} {
		s, ok := e.Sprites().Lookup(td.name)
		if !ok || s != td.want {
			t.Fatalf("sprite %s: got %+v, want %+v", td.name, s, td.want)
		}
	}
	if err := e.WriteLabel("fps", "FPS:60"); err != nil {
		t.Fatal(err)
	}

	bad := &Manifest{Sprites: map[string]Sprite{"s": {Texture: "nope", Atlas: []int{0, 0, 1, 1}}}}
	if err := bad.Apply(e); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := e.Sprites().Lookup("s"); ok {
		t.Fatal("invalid manifest was partially applied")
	}
}
