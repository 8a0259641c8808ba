// Command spry-check validates an asset manifest and the files it refers to.
//
// Usage:
//
//	spry-check [-dir path]... manifest.yaml
//
// Every texture is decoded and every sprite atlas is checked against the size
// of its texture. Every sound is decoded. The exit status is 1 if any problem
// was found.
//
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/db47h/ofs"
	"github.com/db47h/spry/assets"
	"github.com/db47h/spry/audio"
	"github.com/db47h/spry/manifest"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
)

type dirList []string

func (d *dirList) String() string     { return strings.Join(*d, ",") }
func (d *dirList) Set(s string) error { *d = append(*d, s); return nil }

func main() {
	var dirs dirList
	flag.Var(&dirs, "dir", "asset `directory`, may be repeated (default: the manifest's directory)")
	quiet := flag.Bool("q", false, "no progress bar")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "spry-check"})
	name := flag.Arg(0)
	if len(dirs) == 0 {
		dirs = dirList{dirOf(name)}
	}
	problems, err := check(name, dirs, !*quiet)
	if err != nil {
		logger.Fatal("check", "err", err)
	}
	for _, p := range problems {
		logger.Error(p)
	}
	if len(problems) > 0 {
		os.Exit(1)
	}
	logger.Info("ok", "manifest", name)
}

func dirOf(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		return name[:i+1]
	}
	return "."
}

// check returns the problems found in the named manifest. The error is only
// set when the manifest cannot be read at all.
//
func check(name string, dirs []string, progress bool) ([]string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}
	m, err := manifest.Load(name, data)
	if err != nil {
		return nil, err
	}
	var problems []string
	if err := m.Validate(); err != nil {
		problems = append(problems, strings.Split(err.Error(), "\n")...)
	}

	var fs ofs.Overlay
	if err := fs.Add(false, dirs...); err != nil {
		return nil, errors.Wrap(err, "asset directories")
	}
	mgr := assets.NewManager(&fs)
	defer mgr.Close()

	var pb *progressbar.ProgressBar
	if progress {
		pb = progressbar.Default(int64(len(m.Textures)+len(m.Sounds)), "checking assets")
		defer pb.Close()
	}
	step := func() {
		if pb != nil {
			pb.Add(1)
		}
	}

	// textures are decoded in the background, sounds in the meantime
	for _, tn := range sortedKeys(m.Textures) {
		mgr.LoadImage(tn, m.Textures[tn].Source)
	}
	player := audio.New(0)
	for _, sn := range sortedKeys(m.Sounds) {
		s := m.Sounds[sn]
		b, err := mgr.ReadSound(s.Source)
		if err == nil {
			err = player.Load(sn, bytes.NewReader(b), s.Loop)
		}
		if err != nil {
			problems = append(problems, fmt.Sprintf("sound %q: %v", sn, err))
		}
		step()
	}

	sizes := make(map[string]image.Point)
	for len(sizes) < len(m.Textures) {
		mgr.Wait()
		for _, r := range mgr.Poll() {
			step()
			if r.Err != nil {
				problems = append(problems, fmt.Sprintf("texture %q: %v", r.Key, r.Err))
				sizes[r.Key] = image.Point{}
				continue
			}
			sizes[r.Key] = r.Image.Rect.Size()
		}
	}

	for _, sn := range sortedKeys(m.Sprites) {
		s := m.Sprites[sn]
		sz, ok := sizes[s.Texture]
		if !ok || sz == (image.Point{}) {
			continue
		}
		r, err := s.Rect()
		if err != nil {
			continue
		}
		if !r.In(image.Rectangle{Max: sz}) {
			problems = append(problems, fmt.Sprintf("sprite %q: atlas %v outside of texture %q (%v)", sn, r, s.Texture, sz))
		}
	}
	return problems, nil
}

func sortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
