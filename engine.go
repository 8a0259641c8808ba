package spry

import (
	"bytes"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/db47h/ofs"
	"github.com/db47h/spry/assets"
	"github.com/db47h/spry/audio"
	"github.com/db47h/spry/input"
	"github.com/db47h/spry/overlay"
	"github.com/pkg/errors"
)

// UpdateFunc is the per-frame callback. t is the time in seconds since the
// loop started and dt the time elapsed since the previous frame.
//
type UpdateFunc func(e *Engine, t, dt float64)

// Engine ties the renderer to its collaborators: asset loading, input, sound
// and text labels.
//
// An Engine must only be used from the goroutine owning the device.
//
type Engine struct {
	log           *log.Logger
	dev           Device
	width, height float32

	cam      Camera
	textures *TextureTable
	sprites  *SpriteTable
	batch    *BatchRenderer

	loader  *assets.Manager
	audio   *audio.Player
	input   *input.Map
	overlay *overlay.Overlay
}

// New returns an engine rendering a width×height logical screen on dev.
//
// The camera starts with a resolution equal to the logical size and is
// positioned so that world units are logical pixels with the origin at the top
// left corner.
//
func New(dev Device, width, height int, opts ...Option) (*Engine, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid screen size %dx%d", width, height)
	}
	var cfg config
	for _, o := range opts {
		o.set(&cfg)
	}
	if cfg.log == nil {
		cfg.log = Logger()
	}
	if cfg.loader == nil {
		var ovl ofs.Overlay
		if err := ovl.Add(false, "."); err != nil {
			return nil, errors.Wrap(err, "asset directory")
		}
		cfg.loader = assets.NewManager(&ovl)
	}
	if cfg.audio == nil {
		cfg.audio = audio.New(0)
	}
	ovl, err := overlay.New(cfg.font)
	if err != nil {
		cfg.loader.Close()
		return nil, err
	}

	e := &Engine{
		log:     cfg.log,
		dev:     dev,
		width:   float32(width),
		height:  float32(height),
		cam:     screenCamera(float32(width), float32(height)),
		loader:  cfg.loader,
		audio:   cfg.audio,
		input:   input.New(),
		overlay: ovl,
	}
	e.textures = NewTextureTable(dev)
	e.sprites = NewSpriteTable()
	e.batch = NewBatchRenderer(dev, &e.cam, e.textures, e.sprites)
	return e, nil
}

// Size returns the logical screen size.
//
func (e *Engine) Size() Point {
	return Point{e.width, e.height}
}

// Camera returns the world camera.
//
func (e *Engine) Camera() *Camera {
	return &e.cam
}

// Log returns the engine logger.
//
func (e *Engine) Log() *log.Logger {
	return e.log
}

func (e *Engine) Textures() *TextureTable { return e.textures }
func (e *Engine) Sprites() *SpriteTable   { return e.sprites }
func (e *Engine) Input() *input.Map       { return e.input }
func (e *Engine) Audio() *audio.Player    { return e.audio }
func (e *Engine) Loader() *assets.Manager { return e.loader }

// RegisterTexture registers a texture and starts loading its image from
// source in the background. Until the load completes the texture is a 1×1
// white placeholder. Load failures are logged and leave the placeholder in
// place.
//
func (e *Engine) RegisterTexture(name, source string, params ...TextureParameter) error {
	if _, ok := e.textures.Lookup(name); ok {
		e.log.Warn("texture registered twice, previous device texture leaked", "texture", name)
	}
	if _, err := e.textures.Register(name, params...); err != nil {
		return err
	}
	e.loader.LoadImage(name, source)
	return nil
}

// SetTextureImage sets the contents of the named texture from img, registering
// the texture first if needed.
//
func (e *Engine) SetTextureImage(name string, img *image.NRGBA, params ...TextureParameter) error {
	if _, ok := e.textures.Lookup(name); !ok {
		if _, err := e.textures.Register(name, params...); err != nil {
			return err
		}
	}
	return e.textures.Complete(name, img)
}

// RegisterSprite registers a sprite covering atlas in the named texture, with
// a world size equal to the atlas size.
//
func (e *Engine) RegisterSprite(name, texture string, atlas image.Rectangle) {
	e.sprites.Register(name, texture, atlas)
}

// RegisterSpriteSize registers a sprite with an explicit world size.
//
func (e *Engine) RegisterSpriteSize(name, texture string, atlas image.Rectangle, size Point) {
	e.sprites.RegisterSize(name, texture, atlas, size)
}

// RegisterSound loads a WAV sound from source.
//
func (e *Engine) RegisterSound(name, source string, loop bool) error {
	b, err := e.loader.ReadSound(source)
	if err != nil {
		return err
	}
	return e.audio.Load(name, bytes.NewReader(b), loop)
}

// RegisterInput binds the named input to a key code.
//
func (e *Engine) RegisterInput(name, code string) {
	if !input.ValidCode(code) {
		e.log.Warn("unknown key code", "input", name, "code", code)
	}
	e.input.Add(name, code)
}

// AddLabel adds a text label to the screen overlay.
//
func (e *Engine) AddLabel(name string, l overlay.Label) {
	e.overlay.Add(name, l)
}

// Frame runs one frame: textures whose load completed since the last frame
// are uploaded, then update is called.
//
func (e *Engine) Frame(t, dt float64, update UpdateFunc) {
	e.applyLoads()
	if update != nil {
		update(e, t, dt)
	}
}

// WaitAssets blocks until all pending texture loads are done and applies
// them.
//
func (e *Engine) WaitAssets() {
	e.loader.Wait()
	e.applyLoads()
}

func (e *Engine) applyLoads() {
	for _, r := range e.loader.Poll() {
		if r.Err != nil {
			e.log.Warn("texture load failed", "texture", r.Key, "err", r.Err)
			continue
		}
		if err := e.textures.Complete(r.Key, r.Image); err != nil {
			e.log.Warn("texture upload failed", "texture", r.Key, "err", err)
			continue
		}
		e.log.Debug("texture loaded", "texture", r.Key, "source", r.Name, "size", r.Image.Rect.Size())
	}
}

// RenderBegin starts drawing a frame with the world camera.
//
func (e *Engine) RenderBegin() {
	e.batch.Begin()
}

// SpriteDraw draws the named sprite centered on pos, unscaled and untinted.
//
func (e *Engine) SpriteDraw(name string, pos Pos) error {
	return e.batch.Draw(name, pos, Unit, White)
}

// SpriteDrawEx draws the named sprite centered on pos, scaled by scale and
// modulated by mod.
//
func (e *Engine) SpriteDrawEx(name string, pos Pos, scale Point, mod Color) error {
	return e.batch.Draw(name, pos, scale, mod)
}

// RenderEnd flushes the sprites and draws the label overlay with a screen
// fixed view.
//
func (e *Engine) RenderEnd() error {
	e.batch.End()
	if e.overlay.Len() == 0 {
		return nil
	}
	sc := screenCamera(e.width, e.height)
	e.batch.SetView(sc.TransformParams())
	err := e.overlay.Render(overlayTarget{e})
	e.batch.End()
	return err
}

// Stats returns the renderer counters of the current frame.
//
func (e *Engine) Stats() Stats {
	return e.batch.Stats()
}

// IsPressed reports whether the named input is held down. It panics if the
// input was never registered.
//
func (e *Engine) IsPressed(name string) bool {
	return e.input.IsPressed(name)
}

// Axis returns 1 if pos is pressed, -1 if neg is, 0 if both or neither are.
//
func (e *Engine) Axis(neg, pos string) float32 {
	return e.input.Axis(neg, pos)
}

// PlaySound plays the named sound unless it is already playing.
//
func (e *Engine) PlaySound(name string) error {
	return e.audio.Play(name)
}

// PauseSound pauses the named sound.
//
func (e *Engine) PauseSound(name string) error {
	return e.audio.Pause(name)
}

// WriteLabel sets the text of the named label.
//
func (e *Engine) WriteLabel(name, text string) error {
	return e.overlay.Write(name, text)
}

// ShowLabel shows or hides the named label.
//
func (e *Engine) ShowLabel(name string, visible bool) error {
	return e.overlay.SetVisible(name, visible)
}

// Close stops asset loading and sound, and releases all device textures.
//
func (e *Engine) Close() error {
	err := e.loader.Close()
	e.audio.Close()
	e.textures.Release()
	return err
}

type overlayTarget struct {
	e *Engine
}

func (t overlayTarget) SetImage(name string, img *image.NRGBA) error {
	return t.e.SetTextureImage(name, img)
}

func (t overlayTarget) DrawImage(name string, x, y, z, w, h float32, c color.Color) error {
	tex, ok := t.e.textures.Lookup(name)
	if !ok {
		return errors.Wrap(ErrUnknownTexture, name)
	}
	return t.e.batch.DrawRegion(name, image.Rect(0, 0, tex.Width, tex.Height), Point{w, h}, Pos{x, y, z}, Unit, ColorOf(c))
}
