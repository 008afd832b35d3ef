package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/gridlockgames/collider/collision"
	"github.com/gridlockgames/collider/config"
	"github.com/gridlockgames/collider/ecs"
	"github.com/gridlockgames/collider/ecs/component"
	"github.com/gridlockgames/collider/level"
	"github.com/gridlockgames/collider/sim"
)

var (
	tileFallback = color.RGBA{R: 0x55, G: 0x5d, B: 0x6b, A: 0xff}
	bodyColor    = color.RGBA{R: 0x3f, G: 0xc4, B: 0x5a, A: 0xff}
	contactColor = color.RGBA{R: 0xff, G: 0xd4, B: 0x3a, A: 0xff}
	surfaceColor = color.RGBA{R: 0x4a, G: 0x9c, B: 0xff, A: 0xff}
	attackColor  = color.RGBA{R: 0xff, G: 0x45, B: 0x45, A: 0xff}
	vulnColor    = color.RGBA{R: 0x45, G: 0x9c, B: 0xff, A: 0xff}
	normalLen    = 12.0
)

// Viewer steps the simulation at the display rate and draws every collision
// structure on top of the level.
type Viewer struct {
	s      *sim.Sim
	scn    *sim.Scenario
	lvl    *level.Level
	tuning config.Tuning

	scnName string
	scnSrc  []byte

	zoom      float64
	paused    bool
	face      ebtext.Face
	clipReady bool
}

func NewViewer(lvl *level.Level, tuning config.Tuning, scnName string, scnSrc []byte, zoom float64) (*Viewer, error) {
	v := &Viewer{
		lvl:     lvl,
		tuning:  tuning,
		scnName: scnName,
		scnSrc:  scnSrc,
		zoom:    zoom,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
	}
	if err := clipboard.Init(); err == nil {
		v.clipReady = true
	}
	if err := v.reset(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Viewer) reset() error {
	s, err := sim.New(v.lvl, v.tuning)
	if err != nil {
		return err
	}
	if _, err := s.SpawnAtLevelSpawn(v.tuning.CellSize, v.tuning.CellSize); err != nil {
		return err
	}

	var scn *sim.Scenario
	if len(v.scnSrc) > 0 {
		scn, err = sim.NewScenario(v.scnName, v.scnSrc)
		if err != nil {
			return err
		}
	}

	v.s = s
	v.scn = scn
	return nil
}

func (v *Viewer) WindowSize() (int, int) {
	grid := v.s.Collision.Grid()
	if grid == nil {
		return 640, 480
	}
	return int(grid.WorldWidth() * v.zoom), int(grid.WorldHeight() * v.zoom)
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := v.reset(); err != nil {
			return err
		}
	}
	if v.clipReady && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.copyState()
	}
	if v.clipReady && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		wx, wy := float64(mx)/v.zoom, float64(my)/v.zoom
		clipboard.Write(clipboard.FmtText, []byte(fmt.Sprintf("(%.2f, %.2f)", wx, wy)))
	}

	step := !v.paused
	if v.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		step = true
	}
	if !step {
		return nil
	}

	if v.scn != nil {
		if err := v.scn.Tick(v.s); err != nil {
			return err
		}
	}
	v.s.Step()
	return nil
}

// copyState puts a one-line dump of every body on the clipboard, for pasting
// into bug reports and regression test expectations.
func (v *Viewer) copyState() {
	out := fmt.Sprintf("frame=%d time=%.4f", v.s.Clock.Frame, v.s.Clock.Time)
	for i, e := range v.s.Actors() {
		body := v.s.Body(e)
		if body == nil {
			continue
		}
		out += fmt.Sprintf(" actor%d=(%.4f,%.4f)", i, body.Pos.X, body.Pos.Y)
	}
	clipboard.Write(clipboard.FmtText, []byte(out))
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	v.drawTiles(screen)
	v.drawSurfaces(screen)
	v.drawBodies(screen)
	v.drawHUD(screen)
}

func (v *Viewer) drawTiles(screen *ebiten.Image) {
	grid := v.s.Collision.Grid()
	if grid == nil {
		return
	}
	fill := tileFallback
	for _, meta := range v.lvl.LayerMeta {
		if meta.Physics && meta.Color != "" {
			if c, ok := parseHexColor(meta.Color); ok {
				fill = c
			}
			break
		}
	}

	z := float32(v.zoom)
	cw := float32(grid.CellWidth) * z
	ch := float32(grid.CellHeight) * z
	for cy := 0; cy < grid.Height; cy++ {
		for cx := 0; cx < grid.Width; cx++ {
			if !grid.IsSolid(cx, cy) {
				continue
			}
			vector.FillRect(screen, float32(cx)*cw, float32(cy)*ch, cw, ch, fill, false)
		}
	}
}

func (v *Viewer) drawSurfaces(screen *ebiten.Image) {
	z := float32(v.zoom)
	for _, s := range v.s.Collision.Surfaces() {
		vector.StrokeLine(screen,
			float32(s.Start.X)*z, float32(s.Start.Y)*z,
			float32(s.End.X)*z, float32(s.End.Y)*z,
			2, surfaceColor, true)

		mid := s.Start.Add(s.End).Mult(0.5)
		tip := mid.Add(s.Normal.Mult(normalLen))
		vector.StrokeLine(screen,
			float32(mid.X)*z, float32(mid.Y)*z,
			float32(tip.X)*z, float32(tip.Y)*z,
			1, surfaceColor, true)
	}
}

func (v *Viewer) drawBodies(screen *ebiten.Image) {
	z := float32(v.zoom)
	now := v.s.Clock.Time

	for _, e := range v.s.Actors() {
		body := v.s.Body(e)
		if body == nil {
			continue
		}
		r := body.Rect()
		x, y := float32(r.X)*z, float32(r.Y)*z
		w, h := float32(r.Width)*z, float32(r.Height)*z
		vector.StrokeRect(screen, x, y, w, h, 1, bodyColor, false)

		// Highlight sides still inside the contact decay window.
		if v.s.Collision.IsTouching(body, collision.SideFloor, now) {
			vector.StrokeLine(screen, x, y+h, x+w, y+h, 3, contactColor, false)
		}
		if v.s.Collision.IsTouching(body, collision.SideCeiling, now) {
			vector.StrokeLine(screen, x, y, x+w, y, 3, contactColor, false)
		}
		if v.s.Collision.IsTouching(body, collision.SideLeftWall, now) {
			vector.StrokeLine(screen, x, y, x, y+h, 3, contactColor, false)
		}
		if v.s.Collision.IsTouching(body, collision.SideRightWall, now) {
			vector.StrokeLine(screen, x+w, y, x+w, y+h, 3, contactColor, false)
		}

		v.drawVolumes(screen, e, body)
	}
}

func (v *Viewer) drawVolumes(screen *ebiten.Image, e ecs.Entity, body *collision.Body) {
	vol := ecs.GetPtr(v.s.World, e, component.VolumesComponent)
	if vol == nil || vol.Set == nil {
		return
	}
	z := float32(v.zoom)
	for _, c := range vol.Set.Attacks() {
		world := c.At(body.Pos)
		vector.StrokeCircle(screen, float32(world.Offset.X)*z, float32(world.Offset.Y)*z, float32(world.Radius)*z, 1, attackColor, true)
	}
	for _, c := range vol.Set.Vulnerabilities() {
		world := c.At(body.Pos)
		vector.StrokeCircle(screen, float32(world.Offset.X)*z, float32(world.Offset.Y)*z, float32(world.Radius)*z, 1, vulnColor, true)
	}
}

func (v *Viewer) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("frame=%d time=%.2f fps=%.1f", v.s.Clock.Frame, v.s.Clock.Time, ebiten.ActualFPS()))
	ebitenutil.DebugPrintAt(screen, "space: pause  n: step  r: reset  c: copy state  click: copy coords", 0, 14)

	if v.paused {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(8, 40)
		op.ColorScale.ScaleWithColor(contactColor)
		ebtext.Draw(screen, "PAUSED", v.face, op)
	}
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.WindowSize()
}

func parseHexColor(s string) (color.RGBA, bool) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, false
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, true
}
