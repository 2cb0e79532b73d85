package system

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

const (
	debugDotSize     = 4
	debugStrokeWidth = 1
	debugScale       = 50.0
)

var (
	debugShapeColor = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	debugHitColor   = cp.FColor{R: 1, G: 0.8, B: 0.1, A: 1}
)

// DrawPhysicsDebug draws every cp shape plus the probe casts, through the
// camera. World +Y is screen up.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}

	b := screen.Bounds()
	drawer := &physicsDebugDrawer{screen: screen, view: newDebugView(w, b.Dx(), b.Dy())}
	cp.DrawSpace(space, drawer)
	drawer.drawProbes(w)
}

// DrawControllerDebug prints the live controller's tuning and probe state.
func DrawControllerDebug(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	player, ok := w.First(component.FloatingCharacterComponent.Kind())
	if !ok {
		ebitenutil.DebugPrintAt(screen, "No controller (R does nothing)", 10, 10)
		return
	}
	fc, _ := ecs.Get(w, player, component.FloatingCharacterComponent.Kind())
	grounded := false
	distance := 0.0
	if hits, ok := probeHits(w, player); ok && !hits.IsEmpty() {
		grounded = true
		distance = hits.Hits[0].Point1.Distance(hits.Hits[0].Point2)
	}
	spawnID := "-"
	if info, ok := ecs.Get(w, player, component.SpawnInfoComponent.Kind()); ok {
		spawnID = info.ID.String()[:8]
	}
	vy := 0.0
	if vel, ok := ecs.Get(w, player, component.LinearVelocityComponent.Kind()); ok {
		vy = vel.Value.Y
	}
	text := fmt.Sprintf("Spawn: %s\nRide: %.2f Strength: %.2f Damper: %.2f\nGrounded: %v Distance: %.3f\nVy: %.2f\nR respawn, F1 tuning",
		spawnID, fc.RideHeight, fc.SpringStrength, fc.SpringDamper, grounded, distance, vy)
	ebitenutil.DebugPrintAt(screen, text, 10, 10)
}

// debugView maps world meters to screen pixels around the camera.
type debugView struct {
	camX, camY   float64
	scale        float64
	halfW, halfH float64
}

func newDebugView(w *ecs.World, width, height int) debugView {
	v := debugView{scale: debugScale, halfW: float64(width) / 2, halfH: float64(height) / 2}
	cam, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return v
	}
	if t, ok := ecs.Get(w, cam, component.TransformComponent.Kind()); ok {
		v.camX, v.camY = t.X, t.Y
	}
	if c, ok := ecs.Get(w, cam, component.CameraComponent.Kind()); ok && c.Scale > 0 {
		v.scale = c.Scale
	}
	return v
}

func (v debugView) toScreen(p cp.Vector) (float32, float32) {
	return float32(v.halfW + (p.X-v.camX)*v.scale), float32(v.halfH - (p.Y-v.camY)*v.scale)
}

// physicsDebugDrawer outlines cp shapes; fills are skipped.
type physicsDebugDrawer struct {
	screen *ebiten.Image
	view   debugView
}

func (d *physicsDebugDrawer) drawProbes(w *ecs.World) {
	ecs.ForEach(w, component.ShapeHitsComponent.Kind(), func(e ecs.Entity, hits *component.ShapeHits) {
		for _, hit := range hits.Hits {
			d.line(hit.Point1, hit.Point2, debugHitColor)
			d.circle(hit.Point2, debugDotSize/d.view.scale, debugHitColor)
		}
	})
}

func (d *physicsDebugDrawer) line(a, b cp.Vector, c cp.FColor) {
	x0, y0 := d.view.toScreen(a)
	x1, y1 := d.view.toScreen(b)
	vector.StrokeLine(d.screen, x0, y0, x1, y1, debugStrokeWidth, fcolor(c), true)
}

func (d *physicsDebugDrawer) circle(center cp.Vector, radius float64, c cp.FColor) {
	x, y := d.view.toScreen(center)
	vector.StrokeCircle(d.screen, x, y, float32(radius*d.view.scale), debugStrokeWidth, fcolor(c), true)
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, _ cp.FColor, _ interface{}) {
	d.circle(pos, radius, outline)
	d.line(pos, pos.Add(cp.ForAngle(angle).Mult(radius)), outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, _ interface{}) {
	d.line(a, b, fill)
}

// DrawFatSegment draws a capsule as its two side edges and end circles.
func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, _ cp.FColor, _ interface{}) {
	side := b.Sub(a).Perp().Normalize().Mult(radius)
	d.line(a.Add(side), b.Add(side), outline)
	d.line(a.Sub(side), b.Sub(side), outline)
	d.circle(a, radius, outline)
	d.circle(b, radius, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, _ float64, outline, _ cp.FColor, _ interface{}) {
	for i := 0; i < count; i++ {
		d.line(verts[i], verts[(i+1)%count], outline)
	}
}

func (d *physicsDebugDrawer) DrawDot(_ float64, pos cp.Vector, fill cp.FColor, _ interface{}) {
	d.circle(pos, debugDotSize/2/d.view.scale, fill)
}

func (d *physicsDebugDrawer) Flags() uint                                 { return cp.DRAW_SHAPES }
func (d *physicsDebugDrawer) OutlineColor() cp.FColor                     { return debugShapeColor }
func (d *physicsDebugDrawer) ShapeColor(*cp.Shape, interface{}) cp.FColor { return debugShapeColor }
func (d *physicsDebugDrawer) ConstraintColor() cp.FColor                  { return debugShapeColor }
func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor              { return debugHitColor }
func (d *physicsDebugDrawer) Data() interface{}                           { return nil }

func fcolor(c cp.FColor) color.NRGBA {
	return color.NRGBA{R: uint8(c.R * 255), G: uint8(c.G * 255), B: uint8(c.B * 255), A: uint8(c.A * 255)}
}
