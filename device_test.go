package spry

import (
	"github.com/pkg/errors"
)

// call is one recorded device call.
type call struct {
	op       string
	id       TextureID
	w, h     int
	vertices int
	view     [4]float32
}

type upload struct {
	s    Stream
	data []float32
}

// recorder is a Device keeping a log of the calls it receives.
type recorder struct {
	calls   []call
	uploads []upload
	nextID  TextureID
	fail    bool // CreateTexture fails
	live    map[TextureID]bool
}

func newRecorder() *recorder {
	return &recorder{live: make(map[TextureID]bool)}
}

func (r *recorder) CreateTexture() (TextureID, error) {
	if r.fail {
		return 0, errors.New("out of texture memory")
	}
	r.nextID++
	r.live[r.nextID] = true
	r.calls = append(r.calls, call{op: "create", id: r.nextID})
	return r.nextID, nil
}

func (r *recorder) UploadTexture(id TextureID, w, h int, pix []byte, p TextureParams) {
	if len(pix) != 4*w*h {
		panic("bad pixel buffer size")
	}
	r.calls = append(r.calls, call{op: "upload", id: id, w: w, h: h})
}

func (r *recorder) DeleteTexture(id TextureID) {
	delete(r.live, id)
	r.calls = append(r.calls, call{op: "delete", id: id})
}

func (r *recorder) BindTexture(unit int, id TextureID) {
	r.calls = append(r.calls, call{op: "bind", id: id})
}

func (r *recorder) UploadBuffer(s Stream, data []float32) {
	r.uploads = append(r.uploads, upload{s, append([]float32(nil), data...)})
}

func (r *recorder) Draw(vertices int) {
	r.calls = append(r.calls, call{op: "draw", vertices: vertices})
}

func (r *recorder) Clear() {
	r.calls = append(r.calls, call{op: "clear"})
}

func (r *recorder) SetView(resX, resY, posX, posY float32) {
	r.calls = append(r.calls, call{op: "view", view: [4]float32{resX, resY, posX, posY}})
}

// ops returns the recorded operations of the given kinds, in order.
func (r *recorder) ops(kinds ...string) []call {
	var cs []call
	for _, c := range r.calls {
		for _, k := range kinds {
			if c.op == k {
				cs = append(cs, c)
				break
			}
		}
	}
	return cs
}

// draws returns the vertex counts of all draw calls.
func (r *recorder) draws() []int {
	var vs []int
	for _, c := range r.ops("draw") {
		vs = append(vs, c.vertices)
	}
	return vs
}

// lastUpload returns the data of the last upload of stream s.
func (r *recorder) lastUpload(s Stream) []float32 {
	for i := len(r.uploads) - 1; i >= 0; i-- {
		if r.uploads[i].s == s {
			return r.uploads[i].data
		}
	}
	return nil
}

func (r *recorder) reset() {
	r.calls = nil
	r.uploads = nil
}

func approxEqual(a, b float32) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}
