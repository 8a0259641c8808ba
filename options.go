package spry

import (
	"github.com/charmbracelet/log"
	"github.com/db47h/spry/assets"
	"github.com/db47h/spry/audio"
	"github.com/golang/freetype/truetype"
)

type config struct {
	log    *log.Logger
	loader *assets.Manager
	audio  *audio.Player
	font   *truetype.Font
}

// Option configures an Engine.
//
type Option interface {
	set(*config)
}

type optionFunc func(*config)

func (f optionFunc) set(cfg *config) {
	f(cfg)
}

// WithLogger sets the engine logger. The default is Logger().
//
func WithLogger(l *log.Logger) Option {
	return optionFunc(func(cfg *config) {
		cfg.log = l
	})
}

// WithLoader sets the asset manager used to load textures and sounds. The
// engine takes ownership of m and closes it in Close.
//
// The default loads from the current directory.
//
func WithLoader(m *assets.Manager) Option {
	return optionFunc(func(cfg *config) {
		cfg.loader = m
	})
}

// WithAudio sets the sound player. The engine closes it in Close. The default
// player is never opened and stays silent.
//
func WithAudio(p *audio.Player) Option {
	return optionFunc(func(cfg *config) {
		cfg.audio = p
	})
}

// WithFont sets the font used for labels. The default is Go Regular.
//
func WithFont(f *truetype.Font) Option {
	return optionFunc(func(cfg *config) {
		cfg.font = f
	})
}
