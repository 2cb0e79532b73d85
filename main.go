package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/floater/prefabs"
)

func main() {
	scene, err := prefabs.LoadSceneSpec("scene.yaml")
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(scene.Width, scene.Height)
	ebiten.SetWindowTitle(scene.Title)
	ebiten.SetTPS(scene.Physics.TPS)

	game, err := NewGame(scene)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
