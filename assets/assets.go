// Package assets loads engine assets from an ofs.FileSystem.
//
// Images are decoded in the background by a bounded pool of workers and handed
// back to the frame thread through Poll. Other files are read synchronously.
//
package assets

import (
	"path"
	"runtime"
	"strings"
	"sync"

	"github.com/db47h/ofs"
	"github.com/pkg/errors"
)

// ErrClosed is reported for loads requested after Close.
//
var ErrClosed = errors.New("asset manager closed")

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

type config struct {
	texturePath string
	soundPath   string
	fontPath    string
	workers     int
}

// Option is implemented by option functions passed as arguments to NewManager.
//
type Option interface {
	set(*config)
}

type cfn func(*config)

func (f cfn) set(cfg *config) {
	f(cfg)
}

// TexturePath returns an Option that sets the default texture path.
//
func TexturePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.texturePath = name
	})
}

// SoundPath returns an Option that sets the default sound path.
//
func SoundPath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.soundPath = name
	})
}

// FontPath returns an Option that sets the default font path.
//
func FontPath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.fontPath = name
	})
}

// Workers sets the number of background decoders. The default is twice the
// number of CPUs.
//
func Workers(n int) Option {
	return cfn(func(cfg *config) {
		cfg.workers = n
	})
}

// A Manager loads assets. Its methods are safe for concurrent use.
//
type Manager struct {
	fs  ofs.FileSystem
	cfg *config
	cs  chan func()
	cl  sync.RWMutex // held for writing while closing cs

	m       sync.Mutex
	closed  bool
	pending map[string]struct{}
	done    []Result
	idle    *sync.Cond // signaled when pending becomes empty
	workers sync.WaitGroup
}

// NewManager returns a new asset Manager reading from fs.
//
func NewManager(fs ofs.FileSystem, options ...Option) *Manager {
	cfg := &config{workers: 2 * runtime.NumCPU()}
	for _, o := range options {
		o.set(cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}
	m := &Manager{
		fs:      fs,
		cfg:     cfg,
		cs:      make(chan func(), 4096),
		pending: make(map[string]struct{}),
	}
	m.idle = sync.NewCond(&m.m)
	// a limited number of workers prevents excessive simultaneous disk access
	// on mechanical hard drives.
	for i := 0; i < cfg.workers; i++ {
		m.workers.Add(1)
		go func() {
			defer m.workers.Done()
			for f := range m.cs {
				f()
			}
		}()
	}
	return m
}

// start marks key as pending. It returns false if key is already pending or
// the manager is closed; in the latter case an ErrClosed result is queued.
//
func (m *Manager) start(key, name string) bool {
	m.m.Lock()
	defer m.m.Unlock()
	if m.closed {
		m.done = append(m.done, Result{Key: key, Name: name, Err: errors.Wrap(ErrClosed, name)})
		return false
	}
	if _, ok := m.pending[key]; ok {
		return false
	}
	m.pending[key] = struct{}{}
	return true
}

// submit queues load for key unless it is already pending.
//
func (m *Manager) submit(key, name string, load func() Result) {
	m.cl.RLock()
	defer m.cl.RUnlock()
	if !m.start(key, name) {
		return
	}
	m.cs <- func() { m.complete(load()) }
}

func (m *Manager) complete(r Result) {
	m.m.Lock()
	m.done = append(m.done, r)
	delete(m.pending, r.Key)
	if len(m.pending) == 0 {
		m.idle.Broadcast()
	}
	m.m.Unlock()
}

// Poll returns the loads completed since the previous call, in completion
// order. It never blocks on a pending load.
//
func (m *Manager) Poll() []Result {
	m.m.Lock()
	rs := m.done
	m.done = nil
	m.m.Unlock()
	return rs
}

// Pending returns the number of loads in progress.
//
func (m *Manager) Pending() int {
	m.m.Lock()
	n := len(m.pending)
	m.m.Unlock()
	return n
}

// Wait blocks until no load is in progress.
//
func (m *Manager) Wait() {
	m.m.Lock()
	for len(m.pending) > 0 {
		m.idle.Wait()
	}
	m.m.Unlock()
}

// Close waits for pending loads and stops the workers. Loads requested after
// Close fail with ErrClosed.
//
func (m *Manager) Close() error {
	m.cl.Lock()
	m.m.Lock()
	if m.closed {
		m.m.Unlock()
		m.cl.Unlock()
		return nil
	}
	m.closed = true
	m.m.Unlock()
	close(m.cs)
	m.cl.Unlock()
	m.workers.Wait()
	return nil
}

// Errors returns the load errors found in rs, or nil.
//
func Errors(rs []Result) error {
	var errs errorList
	for _, r := range rs {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	if errs != nil {
		return errs
	}
	return nil
}

func (m *Manager) texturePath(name string) string { return path.Join(m.cfg.texturePath, name) }
func (m *Manager) soundPath(name string) string   { return path.Join(m.cfg.soundPath, name) }
func (m *Manager) fontPath(name string) string    { return path.Join(m.cfg.fontPath, name) }
