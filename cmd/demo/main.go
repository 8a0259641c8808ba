// Command demo moves a frog around with the arrow keys and plays a sound on
// Space, next to a spinning tinted sprite.
//
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/db47h/spry"
	"github.com/db47h/spry/app"
	"github.com/db47h/spry/debug"
)

const (
	width  = 320
	height = 240
	speed  = 100 // pixels per second
)

type game struct {
	player spry.Pos
	fps    float64 // time since the FPS label was last written
	timer  debug.Timer
}

func (g *game) update(e *spry.Engine, t, dt float64) {
	dx := e.Axis("left", "right")
	dy := e.Axis("up", "down")
	g.player.X += dx * speed * float32(dt)
	g.player.Y += dy * speed * float32(dt)

	if e.IsPressed("boom") {
		if err := e.PlaySound("boom"); err != nil {
			e.Log().Error("play", "err", err)
		}
	}

	g.timer.AddSeconds(dt)
	g.fps += dt
	if g.fps >= 1 {
		draw(e, e.WriteLabel("fps-label", fmt.Sprintf("FPS:%d", int(math.Round(g.timer.AveragePerSecond())))))
		g.fps = 0
	}

	e.RenderBegin()
	draw(e, e.SpriteDrawEx("amogus", spry.P(80, 120, 0),
		spry.Pt(float32(math.Sin(t)), float32(math.Cos(t))),
		spry.Color{R: 1, G: 0.2, B: 0.2, A: 1}))
	draw(e, e.SpriteDraw("player", g.player))
	draw(e, e.SpriteDraw("jesse", spry.P(240, 120, 2)))
	draw(e, e.RenderEnd())
}

func draw(e *spry.Engine, err error) {
	if err != nil {
		e.Log().Error("draw", "err", err)
	}
}

func main() {
	full := flag.Bool("f", false, "full screen")
	flag.Parse()

	g := &game{player: spry.P(160, 120, 1)}
	opts := []app.Option{
		app.Title("spry demo"),
		app.AssetDirs("assets", "cmd/demo/assets"),
		app.Manifest("demo.yaml"),
	}
	if *full {
		opts = append(opts, app.FullScreen())
	}
	if err := app.Main(width, height, nil, g.update, opts...); err != nil {
		spry.Logger().Error("demo", "err", err)
		os.Exit(1)
	}
}
