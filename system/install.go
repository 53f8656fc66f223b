package system

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/wander/engine"
)

// Install registers the simulation systems on world in their execution order
// Resources must be final before calling, systems cache them
func Install(world *engine.World, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	world.AddSystem(NewMotionSystem(world, logger))
	world.AddSystem(NewRouteSystem(world, logger))
	world.AddSystem(NewDiagnosticsSystem(world))
}
