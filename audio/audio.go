// Package audio plays named sounds through a beep mixer.
//
// Playback is fire and forget: there is no completion tracking beyond the
// playing state reported by Playing.
//
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

// DefaultSampleRate is the mixing rate used when none is given to New.
//
const DefaultSampleRate = beep.SampleRate(44100)

// ErrUnknownSound is returned when playing or pausing a sound that was never
// added.
//
var ErrUnknownSound = errors.New("unknown sound")

type sound struct {
	buf  *beep.Buffer
	loop bool
	ctrl *beep.Ctrl // current playback, nil if never played
	v    *voice
}

// Player holds named sounds and mixes them.
//
// All methods are safe for concurrent use with the speaker goroutine.
//
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	sounds map[string]*sound
	open   bool
}

// New returns a player mixing at rate. If rate is 0, DefaultSampleRate is
// used. The player is silent until Open is called.
//
func New(rate beep.SampleRate) *Player {
	if rate == 0 {
		rate = DefaultSampleRate
	}
	return &Player{
		rate:   rate,
		mixer:  &beep.Mixer{},
		sounds: make(map[string]*sound),
	}
}

// SampleRate returns the mixing rate.
//
func (p *Player) SampleRate() beep.SampleRate {
	return p.rate
}

// Open initializes the speaker and starts mixing. Calling Open on an open
// player does nothing.
//
func (p *Player) Open() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.open {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(p.mixer)
	p.open = true
	return nil
}

// Close stops all sounds and the speaker.
//
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.open = false
}

// lock must be held while touching streamers the speaker may be reading.
//
func (p *Player) lock() {
	p.mu.Lock()
	if p.open {
		speaker.Lock()
	}
}

func (p *Player) unlock() {
	if p.open {
		speaker.Unlock()
	}
	p.mu.Unlock()
}

// Add registers buf as the named sound, replacing any previous sound of that
// name. The buffer must use the player's sample rate.
//
func (p *Player) Add(name string, buf *beep.Buffer, loop bool) {
	p.lock()
	defer p.unlock()
	if old, ok := p.sounds[name]; ok && old.ctrl != nil {
		old.ctrl.Paused = true
	}
	p.sounds[name] = &sound{buf: buf, loop: loop}
}

// Load decodes a WAV stream from r into memory and registers it as the named
// sound.
//
func (p *Player) Load(name string, r io.Reader, loop bool) error {
	s, format, err := wav.Decode(r)
	if err != nil {
		return errors.Wrapf(err, "decode sound %q", name)
	}
	defer s.Close()
	buf := beep.NewBuffer(beep.Format{SampleRate: p.rate, NumChannels: 2, Precision: 2})
	if format.SampleRate != p.rate {
		buf.Append(beep.Resample(4, format.SampleRate, p.rate, s))
	} else {
		buf.Append(s)
	}
	if err := s.Err(); err != nil {
		return errors.Wrapf(err, "decode sound %q", name)
	}
	p.Add(name, buf, loop)
	return nil
}

// Play starts the named sound. A sound that is already playing is left
// alone, a paused sound resumes, and a finished or never played sound starts
// from the beginning.
//
func (p *Player) Play(name string) error {
	p.lock()
	defer p.unlock()
	s, ok := p.sounds[name]
	if !ok {
		return errors.Wrap(ErrUnknownSound, name)
	}
	if s.ctrl != nil && !s.v.done {
		s.ctrl.Paused = false
		return nil
	}
	s.v = &voice{s: s.buf.Streamer(0, s.buf.Len()), loop: s.loop}
	s.ctrl = &beep.Ctrl{Streamer: s.v}
	p.mixer.Add(s.ctrl)
	return nil
}

// Pause pauses the named sound. Pausing a sound that is not playing does
// nothing.
//
func (p *Player) Pause(name string) error {
	p.lock()
	defer p.unlock()
	s, ok := p.sounds[name]
	if !ok {
		return errors.Wrap(ErrUnknownSound, name)
	}
	if s.ctrl != nil {
		s.ctrl.Paused = true
	}
	return nil
}

// Playing reports whether the named sound is playing.
//
func (p *Player) Playing(name string) (bool, error) {
	p.lock()
	defer p.unlock()
	s, ok := p.sounds[name]
	if !ok {
		return false, errors.Wrap(ErrUnknownSound, name)
	}
	return s.ctrl != nil && !s.ctrl.Paused && !s.v.done, nil
}

// voice is one playback of a sound. It rewinds at the end of the stream when
// looping.
//
type voice struct {
	s    beep.StreamSeeker
	loop bool
	done bool
}

func (v *voice) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) {
		m, ok := v.s.Stream(samples[n:])
		n += m
		if ok && m > 0 {
			continue
		}
		if !v.loop || v.s.Len() == 0 {
			v.done = true
			return n, n > 0
		}
		if err := v.s.Seek(0); err != nil {
			v.done = true
			return n, n > 0
		}
	}
	return n, true
}

func (v *voice) Err() error {
	return v.s.Err()
}
