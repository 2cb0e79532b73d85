package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/entity"
	"github.com/milk9111/floater/ecs/system"
	"github.com/milk9111/floater/prefabs"
)

type Game struct {
	scene     *prefabs.SceneSpec
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	watcher   *prefabs.Watcher

	inspector     *ebitenui.UI
	inspectorView *inspector
	showInspector bool
}

func NewGame(scene *prefabs.SceneSpec) (*Game, error) {
	w := ecs.NewWorld()

	physics := system.NewPhysicsSystem(system.PhysicsConfig{
		Gravity:       cp.Vector{X: scene.Physics.GravityX, Y: scene.Physics.GravityY},
		Iterations:    scene.Physics.Iterations,
		TPS:           scene.Physics.TPS,
		CollisionSlop: scene.Physics.CollisionSlop,
	})

	respawnPrefab := scene.RespawnPrefab
	if respawnPrefab == "" {
		respawnPrefab = entity.RespawnPlayerPrefab
	}

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewRespawnSystem(respawnPrefab, func(w *ecs.World) (ecs.Entity, error) {
			return entity.BuildEntity(w, respawnPrefab)
		}),
		system.NewShapeCastSystem(physics),
		system.NewFloatingSystem(),
		physics,
		system.NewMoverSystem(),
		system.NewCameraSystem(),
	)

	if _, err := entity.SpawnScene(w, scene); err != nil {
		return nil, err
	}

	g := &Game{
		scene:     scene,
		world:     w,
		scheduler: scheduler,
		physics:   physics,
	}

	if watcher, err := prefabs.NewWatcher(prefabs.Dir); err != nil {
		log.Printf("Prefabs: hot reload disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	g.inspectorView = newInspector(system.WorldTuning{World: w})
	g.inspector = g.inspectorView.ui

	g.logEvents()
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showInspector = !g.showInspector
	}

	for _, name := range g.watcher.Poll() {
		if mod, ok := prefabs.ModTime(name); ok {
			log.Printf("Prefabs: %s changed at %s; next build uses it", name, mod.Format(time.TimeOnly))
			continue
		}
		log.Printf("Prefabs: %s removed; falling back to the embedded copy", name)
	}

	g.scheduler.Update(g.world)
	g.logEvents()

	if g.showInspector {
		g.inspectorView.refresh()
		g.inspector.Update()
	}
	return nil
}

func (g *Game) logEvents() {
	for _, evt := range g.world.Events().Drain() {
		data, ok := evt.Data.(ecs.ControllerEvent)
		if !ok {
			continue
		}
		switch evt.Type {
		case ecs.EventControllerSpawned:
			log.Printf("Controller: spawned %s from %s (spawn %s)", data.Entity, data.Prefab, data.SpawnID)
		case ecs.EventControllerDestroyed:
			log.Printf("Controller: destroyed %s (spawn %s)", data.Entity, data.SpawnID)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x1c, B: 0x24, A: 0xff})
	system.DrawPhysicsDebug(g.physics.Space(), g.world, screen)
	system.DrawControllerDebug(g.world, screen)

	if g.showInspector {
		g.inspector.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.scene.Width, g.scene.Height
}

func (g *Game) Close() error {
	if err := g.watcher.Close(); err != nil {
		return fmt.Errorf("close prefab watcher: %w", err)
	}
	return nil
}
