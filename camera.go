package spry

// ZFar is the depth scale of the projection: world z is mapped to clip z as
// -z/ZFar, keeping small integer depth keys well inside the depth range.
//
const ZFar = 1000

// Camera is an orthographic, unrotated 2D camera.
//
// The vertical resolution is stored negated so that world y grows downwards
// from a top-left origin.
//
type Camera struct {
	resX, resY float32
	posX, posY float32
}

// SetResolution sets the extent of the visible world area.
//
func (c *Camera) SetResolution(w, h float32) {
	c.resX = w
	c.resY = -h
}

// Resolution returns the extent of the visible world area as set by
// SetResolution.
//
func (c *Camera) Resolution() Point {
	return Point{c.resX, -c.resY}
}

// SetPosition sets the world offset added to every vertex.
//
func (c *Camera) SetPosition(x, y float32) {
	c.posX = x
	c.posY = y
}

// Move translates the camera offset by (dx, dy).
//
func (c *Camera) Move(dx, dy float32) {
	c.posX += dx
	c.posY += dy
}

// CenterOn moves the camera so that the world point (x, y) is at the center of
// the view.
//
func (c *Camera) CenterOn(x, y float32) {
	c.posX = -x
	c.posY = -y
}

// Position returns the camera offset.
//
func (c *Camera) Position() Point {
	return Point{c.posX, c.posY}
}

// TransformParams returns the four scalars consumed by the vertex stage.
//
func (c *Camera) TransformParams() (resX, resY, posX, posY float32) {
	return c.resX, c.resY, c.posX, c.posY
}

// Project maps a world position to clip space the same way the vertex stage
// does.
//
func (c *Camera) Project(p Pos) (x, y, z float32) {
	x = (p.X + c.posX) / c.resX * 2
	y = (p.Y + c.posY) / c.resY * 2
	z = -p.Z / ZFar
	return x, y, z
}

// screenCamera returns a camera that maps world units to the pixels of a
// w×h area with a top-left origin.
//
func screenCamera(w, h float32) Camera {
	var c Camera
	c.SetResolution(w, h)
	c.SetPosition(-w/2, -h/2)
	return c
}
