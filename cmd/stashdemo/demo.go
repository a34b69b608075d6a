package main

import (
	"github.com/oliverbestmann/stash"
	"github.com/oliverbestmann/stash/internal/config"
)

type FrameRate struct {
	FPS uint32
}

type Location struct {
	X, Y float32
}

type Size struct {
	Value float32
}

func buildDemoWorld(cfg config.Config, options ...stash.Option) *stash.World {
	world := stash.NewWorld(options...)

	stash.AddResource(world, FrameRate{FPS: cfg.FPS})

	stash.RegisterComponent[Location](world)
	stash.RegisterComponent[Size](world)

	stash.UpsertLast(stash.UpsertLast(world, Location{X: 12.0, Y: 32.4}), Size{Value: 2.0})

	return world
}
