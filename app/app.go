// Package app runs a spry engine in a desktop window.
//
package app

import (
	"image"
	"math"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/db47h/spry"
	"github.com/db47h/spry/assets"
	"github.com/db47h/spry/gl"
)

func init() {
	runtime.LockOSThread()
}

// SetupFunc registers the game assets once the engine is ready.
//
type SetupFunc func(e *spry.Engine) error

// Option configures the window and the engine created by Main.
//
type Option interface {
	set(*config)
}

type config struct {
	fullScreen bool
	hidden     bool
	x, y, w, h int
	title      string
	manifest   string
	font       string
	dirs       []string
	assetOpts  []assets.Option
	deviceOpts []gl.Option
	log        *log.Logger
	minFT      time.Duration
}

type option func(*config)

func (f option) set(cfg *config) {
	f(cfg)
}

func Title(title string) Option {
	return option(func(cfg *config) {
		cfg.title = title
	})
}

func Pos(x, y int) Option {
	return option(func(cfg *config) {
		cfg.x, cfg.y = x, y
	})
}

// Size sets the initial window size. The default is twice the logical screen
// size.
//
func Size(w, h int) Option {
	return option(func(cfg *config) {
		cfg.w, cfg.h = w, h
	})
}

func FullScreen() Option {
	return option(func(cfg *config) {
		cfg.fullScreen = true
	})
}

func Visible(b bool) Option {
	return option(func(cfg *config) {
		cfg.hidden = !b
	})
}

// Manifest loads and applies an asset manifest before setup runs. The name is
// resolved against the asset directories.
//
func Manifest(name string) Option {
	return option(func(cfg *config) {
		cfg.manifest = name
	})
}

// Font sets the TrueType font used for labels. The name is resolved against
// the asset directories and the font path. The default is Go Regular.
//
func Font(name string) Option {
	return option(func(cfg *config) {
		cfg.font = name
	})
}

// AssetDirs sets the directories assets are loaded from, in lookup order. The
// default is "assets".
//
func AssetDirs(dirs ...string) Option {
	return option(func(cfg *config) {
		cfg.dirs = dirs
	})
}

// AssetOptions passes options to the asset manager.
//
func AssetOptions(opts ...assets.Option) Option {
	return option(func(cfg *config) {
		cfg.assetOpts = append(cfg.assetOpts, opts...)
	})
}

// DeviceOptions passes options to the GL device.
//
func DeviceOptions(opts ...gl.Option) Option {
	return option(func(cfg *config) {
		cfg.deviceOpts = append(cfg.deviceOpts, opts...)
	})
}

func Logger(l *log.Logger) Option {
	return option(func(cfg *config) {
		cfg.log = l
	})
}

// MinFrameTime throttles the frame loop. By default frames are paced by the
// display refresh.
//
func MinFrameTime(t time.Duration) Option {
	return option(func(cfg *config) {
		cfg.minFT = t
	})
}

// Fit returns the largest area with the aspect ratio of a w×h screen that fits
// in a fbw×fbh framebuffer, centered.
//
func Fit(fbw, fbh, w, h int) image.Rectangle {
	if fbw <= 0 || fbh <= 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	var cw, ch int
	if float64(fbw)/float64(w) < float64(fbh)/float64(h) {
		cw = fbw
		ch = int(math.Round(float64(fbw) / float64(w) * float64(h)))
	} else {
		cw = int(math.Round(float64(fbh) * float64(w) / float64(h)))
		ch = fbh
	}
	x, y := (fbw-cw)/2, (fbh-ch)/2
	return image.Rect(x, y, x+cw, y+ch)
}
