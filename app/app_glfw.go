package app

import (
	"fmt"

	"github.com/db47h/ofs"
	"github.com/db47h/spry"
	"github.com/db47h/spry/assets"
	"github.com/db47h/spry/audio"
	"github.com/db47h/spry/gl"
	"github.com/db47h/spry/loop"
	"github.com/db47h/spry/manifest"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// DriverVersion returns the GLFW and GL versions in use. It must be called
// while Main is running.
//
func DriverVersion() string {
	return fmt.Sprintf("GLFW %s - OpenGL %s", glfw.GetVersionString(), gl.Version())
}

// Main opens a window and runs a width×height logical screen in it until the
// window is closed.
//
// setup runs once after the optional manifest has been applied. update runs
// once per frame. Setup failures (window, GL context, shaders) are returned.
// A missing audio device only disables sound.
//
func Main(width, height int, setup SetupFunc, update spry.UpdateFunc, opts ...Option) error {
	cfg := config{
		title: "spry",
		x:     -1,
		y:     -1,
		w:     width * 2,
		h:     height * 2,
		dirs:  []string{"assets"},
		log:   spry.Logger(),
	}
	for _, o := range opts {
		o.set(&cfg)
	}

	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "glfw init")
	}
	defer glfw.Terminate()

	w, err := createWindow(&cfg)
	if err != nil {
		return err
	}
	defer w.Destroy()

	dev, err := gl.NewDevice(cfg.deviceOpts...)
	if err != nil {
		return err
	}
	defer dev.Delete()
	cfg.log.Info("driver", "version", DriverVersion())

	var fs ofs.Overlay
	if err := fs.Add(false, cfg.dirs...); err != nil {
		return errors.Wrap(err, "asset directories")
	}
	loader := assets.NewManager(&fs, cfg.assetOpts...)

	player := audio.New(0)
	if err := player.Open(); err != nil {
		cfg.log.Warn("sound disabled", "err", err)
	}

	eopts := []spry.Option{
		spry.WithLogger(cfg.log),
		spry.WithLoader(loader),
		spry.WithAudio(player),
	}
	if cfg.font != "" {
		f, err := loader.Font(cfg.font)
		if err != nil {
			loader.Close()
			player.Close()
			return err
		}
		eopts = append(eopts, spry.WithFont(f))
	}
	e, err := spry.New(dev, width, height, eopts...)
	if err != nil {
		loader.Close()
		player.Close()
		return err
	}
	defer e.Close()

	if cfg.manifest != "" {
		data, err := loader.ReadFile(cfg.manifest)
		if err != nil {
			return err
		}
		m, err := manifest.Load(cfg.manifest, data)
		if err != nil {
			return err
		}
		if err := m.Apply(e); err != nil {
			return err
		}
	}
	if setup != nil {
		if err := setup(e); err != nil {
			return err
		}
	}

	d := &driver{w: w, e: e, dev: dev, update: update, width: width, height: height}
	d.bind()

	var l loop.Loop
	l.MinFrameTime(cfg.minFT)
	l.Run(d)
	return nil
}

func createWindow(cfg *config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	var (
		monitor *glfw.Monitor
		width   = cfg.w
		height  = cfg.h
	)
	if cfg.fullScreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width = mode.Width
		height = mode.Height
	}
	if cfg.hidden || (!cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0) {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}
	w, err := glfw.CreateWindow(width, height, cfg.title, monitor, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}
	if !cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0 {
		w.SetPos(cfg.x, cfg.y)
		if !cfg.hidden {
			w.Show()
		}
	}
	w.MakeContextCurrent()
	glfw.SwapInterval(1)
	return w, nil
}

// driver feeds window events to the engine and drives its frames.
//
type driver struct {
	w      *glfw.Window
	e      *spry.Engine
	dev    *gl.Device
	update spry.UpdateFunc

	width, height int
	fbw, fbh      int
	setViewport   bool
}

func (d *driver) bind() {
	d.fbw, d.fbh = d.w.GetFramebufferSize()
	d.setViewport = true
	d.w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		d.fbw, d.fbh = width, height
		d.setViewport = true
	})
	in := d.e.Input()
	d.w.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		code, ok := keyCodes[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			in.KeyDown(code, false)
		case glfw.Repeat:
			in.KeyDown(code, true)
		case glfw.Release:
			in.KeyUp(code)
		}
	})
	d.w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			in.Reset()
		}
	})
}

func (d *driver) ProcessEvents() bool {
	d.w.SwapBuffers()
	glfw.PollEvents()
	return d.w.ShouldClose()
}

func (d *driver) Update(t, dt float64) {
	if d.setViewport {
		r := Fit(d.fbw, d.fbh, d.width, d.height)
		d.dev.Viewport(r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		d.setViewport = false
	}
	d.e.Frame(t, dt, d.update)
}
