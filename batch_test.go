package spry

import (
	"image"
	"testing"

	"github.com/pkg/errors"
)

// newTestBatch returns a batch renderer with textures "t1" (64×32) and "t2"
// (32×32), and sprites "a" on t1 and "b" on t2.
func newTestBatch(t *testing.T) (*BatchRenderer, *recorder) {
	t.Helper()
	dev := newRecorder()
	tt := NewTextureTable(dev)
	for name, sz := range map[string]image.Point{"t1": {64, 32}, "t2": {32, 32}} {
		if _, err := tt.Register(name); err != nil {
			t.Fatal(err)
		}
		if err := tt.Complete(name, image.NewNRGBA(image.Rectangle{Max: sz})); err != nil {
			t.Fatal(err)
		}
	}
	st := NewSpriteTable()
	st.Register("a", "t1", image.Rect(0, 0, 32, 32))
	st.Register("b", "t2", image.Rect(0, 0, 32, 32))
	cam := screenCamera(320, 240)
	b := NewBatchRenderer(dev, &cam, tt, st)
	dev.reset()
	return b, dev
}

func drawN(t *testing.T, b *BatchRenderer, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := b.Draw(n, Pos{}, Unit, White); err != nil {
			t.Fatal(err)
		}
	}
}

func repeat(s string, n int) []string {
	ss := make([]string, n)
	for i := range ss {
		ss[i] = s
	}
	return ss
}

func TestBatchFlushes(t *testing.T) {
	alternate := make([]string, 10)
	for i := range alternate {
		alternate[i] = "ab"[i%2 : i%2+1]
	}
	for _, td := range []struct {
		name  string
		draws []string
		want  []int // vertex counts of the draw calls
		binds int
	}{
		{"empty", nil, []int{0}, 0},
		{"one", []string{"a"}, []int{6}, 1},
		{"same texture", repeat("a", 10), []int{60}, 1},
		{"full batch", repeat("a", BatchSize), []int{6 * BatchSize}, 1},
		{"overflow", repeat("a", BatchSize+1), []int{6 * BatchSize, 6}, 1},
		{"two overflows", repeat("a", 2*BatchSize+1), []int{6 * BatchSize, 6 * BatchSize, 6}, 1},
		{"switch", []string{"a", "a", "b", "b", "b"}, []int{12, 18}, 2},
		{"alternate", alternate, []int{6, 6, 6, 6, 6, 6, 6, 6, 6, 6}, 10},
	} {
		t.Run(td.name, func(t *testing.T) {
			b, dev := newTestBatch(t)
			b.Begin()
			drawN(t, b, td.draws...)
			b.End()
			got := dev.draws()
			if len(got) != len(td.want) {
				t.Fatalf("draw calls: got %v, want %v", got, td.want)
			}
			for i := range got {
				if got[i] != td.want[i] {
					t.Fatalf("draw calls: got %v, want %v", got, td.want)
				}
			}
			if n := len(dev.ops("bind")); n != td.binds {
				t.Fatalf("texture binds: got %d, want %d", n, td.binds)
			}
			st := b.Stats()
			if st.DrawCalls != len(td.want) || st.Quads != len(td.draws) || st.TextureBinds != td.binds {
				t.Fatalf("stats: got %+v", st)
			}
			if b.Pending() != 0 {
				t.Fatalf("pending after End: %d", b.Pending())
			}
		})
	}
}

func TestBatchUploadRanges(t *testing.T) {
	b, dev := newTestBatch(t)
	b.Begin()
	drawN(t, b, repeat("a", 5)...)
	b.End()
	for s := StreamPosition; s < streamCount; s++ {
		if n := len(dev.lastUpload(s)); n != 5*VerticesPerQuad*s.Components() {
			t.Errorf("%v: uploaded %d floats, want %d", s, n, 5*VerticesPerQuad*s.Components())
		}
	}
}

func TestBatchGeometry(t *testing.T) {
	b, dev := newTestBatch(t)
	b.Begin()
	mod := Color{0.25, 0.5, 0.75, 1}
	if err := b.Draw("a", Pos{100, 50, 3}, Pt(2, 0.5), mod); err != nil {
		t.Fatal(err)
	}
	b.End()

	// size 32x32, scale (2, 0.5): half extents (32, 8)
	wantPos := []float32{
		68, 42, 3,
		132, 42, 3,
		132, 58, 3,
		68, 42, 3,
		132, 58, 3,
		68, 58, 3,
	}
	// atlas [0,0,32,32] on 64x32: (0, 0, 0.5, 1)
	wantTex := []float32{
		0, 0,
		0.5, 0,
		0.5, 1,
		0, 0,
		0.5, 1,
		0, 1,
	}
	for _, td := range []struct {
		s    Stream
		want []float32
	}{
		{StreamPosition, wantPos},
		{StreamTexCoord, wantTex},
	} {
		got := dev.lastUpload(td.s)
		if len(got) != len(td.want) {
			t.Fatalf("%v: got %d floats, want %d", td.s, len(got), len(td.want))
		}
		for i := range got {
			if !approxEqual(got[i], td.want[i]) {
				t.Fatalf("%v[%d]: got %v, want %v", td.s, i, got[i], td.want[i])
			}
		}
	}
	col := dev.lastUpload(StreamColor)
	for i := 0; i < len(col); i += 4 {
		if col[i] != mod.R || col[i+1] != mod.G || col[i+2] != mod.B || col[i+3] != mod.A {
			t.Fatalf("vertex %d color: got %v", i/4, col[i:i+4])
		}
	}
}

func TestBatchBegin(t *testing.T) {
	b, dev := newTestBatch(t)
	b.Begin()
	calls := dev.ops("clear", "view")
	if len(calls) != 2 || calls[0].op != "clear" || calls[1].view != [4]float32{320, -240, -160, -120} {
		t.Fatalf("Begin: got %+v", calls)
	}

	// the active texture is forgotten between frames
	drawN(t, b, "a")
	b.End()
	b.Begin()
	drawN(t, b, "a")
	b.End()
	if n := len(dev.ops("bind")); n != 2 {
		t.Fatalf("texture binds: got %d, want 2", n)
	}
}

func TestBatchSetView(t *testing.T) {
	b, dev := newTestBatch(t)
	b.Begin()
	drawN(t, b, "a", "a")
	b.SetView(1, 2, 3, 4)
	drawN(t, b, "a")
	b.End()
	if got := dev.draws(); len(got) != 2 || got[0] != 12 || got[1] != 6 {
		t.Fatalf("draw calls: got %v", got)
	}
	// no flush when nothing is pending
	dev.reset()
	b.Begin()
	b.SetView(1, 2, 3, 4)
	b.End()
	if got := dev.draws(); len(got) != 1 {
		t.Fatalf("draw calls: got %v", got)
	}
}

func TestBatchLookupErrors(t *testing.T) {
	b, dev := newTestBatch(t)
	b.sprites.Register("orphan", "missing", image.Rect(0, 0, 1, 1))
	b.Begin()
	drawN(t, b, "a")
	for _, td := range []struct {
		name   string
		sprite string
		want   error
	}{
		{"unknown sprite", "nope", ErrUnknownSprite},
		{"unknown texture", "orphan", ErrUnknownTexture},
	} {
		t.Run(td.name, func(t *testing.T) {
			err := b.Draw(td.sprite, Pos{}, Unit, White)
			if errors.Cause(err) != td.want {
				t.Fatalf("got %v, want %v", err, td.want)
			}
		})
	}
	// failed draws leave the batch alone
	if b.Pending() != 1 || b.texture != "t1" {
		t.Fatalf("batch changed: pending %d, texture %q", b.Pending(), b.texture)
	}
	b.End()
	if got := dev.draws(); len(got) != 1 || got[0] != 6 {
		t.Fatalf("draw calls: got %v", got)
	}
}

// An empty texture name is a valid name, not the absence of a texture.
func TestBatchEmptyTextureName(t *testing.T) {
	dev := newRecorder()
	tt := NewTextureTable(dev)
	tex, err := tt.Register("")
	if err != nil {
		t.Fatal(err)
	}
	st := NewSpriteTable()
	st.Register("a", "", image.Rect(0, 0, 1, 1))
	cam := screenCamera(320, 240)
	b := NewBatchRenderer(dev, &cam, tt, st)
	dev.reset()

	for frame := 0; frame < 2; frame++ {
		b.Begin()
		drawN(t, b, "a", "a")
		b.End()
	}
	binds := dev.ops("bind")
	if len(binds) != 2 {
		t.Fatalf("binds: got %d, want one per frame", len(binds))
	}
	for _, c := range binds {
		if c.id != tex.Handle {
			t.Fatalf("bound %v, want %v", c.id, tex.Handle)
		}
	}
	if got := dev.draws(); len(got) != 2 || got[0] != 12 || got[1] != 12 {
		t.Fatalf("draw calls: got %v", got)
	}
}

// Quads drawn before their texture is loaded use the placeholder size for
// their texture coordinates.
func TestBatchPlaceholderUV(t *testing.T) {
	dev := newRecorder()
	tt := NewTextureTable(dev)
	if _, err := tt.Register("t"); err != nil {
		t.Fatal(err)
	}
	st := NewSpriteTable()
	st.Register("a", "t", image.Rect(0, 0, 32, 32))
	cam := screenCamera(320, 240)
	b := NewBatchRenderer(dev, &cam, tt, st)

	b.Begin()
	drawN(t, b, "a", "a")
	b.End()
	if got := dev.draws(); len(got) != 1 || got[0] != 12 {
		t.Fatalf("draw calls: got %v", got)
	}
	tex := dev.lastUpload(StreamTexCoord)
	for q := 0; q < 2; q++ {
		uv := tex[q*12 : q*12+12]
		want := []float32{0, 0, 32, 0, 32, 32, 0, 0, 32, 32, 0, 32}
		for i := range uv {
			if uv[i] != want[i] {
				t.Fatalf("quad %d: got %v, want %v", q, uv, want)
			}
		}
	}

	// once loaded, the same sprite maps to the real dimensions
	if err := tt.Complete("t", image.NewNRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatal(err)
	}
	b.Begin()
	drawN(t, b, "a")
	b.End()
	if tex := dev.lastUpload(StreamTexCoord); tex[4] != 0.5 || tex[5] != 0.5 {
		t.Fatalf("loaded: got %v", tex)
	}
}
