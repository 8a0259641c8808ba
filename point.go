package spry

import (
	"fmt"
	"image"
)

// Point is a 2D vector, used for sizes and scale factors.
//
type Point struct {
	X float32
	Y float32
}

func PtPt(p image.Point) Point { return Point{float32(p.X), float32(p.Y)} }
func Pt(x, y float32) Point    { return Point{x, y} }

func (p Point) Add(pt Point) Point  { return Point{p.X + pt.X, p.Y + pt.Y} }
func (p Point) Mul(k float32) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Eq(pt Point) bool    { return p.X == pt.X && p.Y == pt.Y }

func (p Point) String() string {
	return fmt.Sprintf("(%.2f,%.2f)", p.X, p.Y)
}

// Pos is a world position. Z is only a depth key handed to the device's depth
// test; higher values are drawn in front.
//
type Pos struct {
	X float32
	Y float32
	Z float32
}

func P(x, y, z float32) Pos { return Pos{x, y, z} }

// XY returns the planar part of p.
//
func (p Pos) XY() Point { return Point{p.X, p.Y} }

func (p Pos) String() string {
	return fmt.Sprintf("(%.2f,%.2f,%.2f)", p.X, p.Y, p.Z)
}

// Unit is the default scale factor.
//
var Unit = Point{1, 1}
