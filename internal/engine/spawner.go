package engine

import "github.com/khryptorgraphics/procsim/internal/worker"

// ProcessSpawner is the production Spawner, launching the configured
// worker binary once per admitted PCB via internal/worker.Spawn.
type ProcessSpawner struct {
	Binary string
}

func (s ProcessSpawner) Spawn(name string) (worker.Protocol, error) {
	return worker.Spawn(s.Binary, name)
}
