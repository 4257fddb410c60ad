// Package ecs provides ECS adapters for scenescroller.
package ecs

import (
	"github.com/phanxgames/scenescroller"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StructureEventType is the Donburi event type for scene structure changes.
// Subscribe to this in your ECS systems to learn about nodes being attached
// and detached anywhere in a scene.
var StructureEventType = events.NewEventType[scenescroller.StructureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Structure events are queued on StructureEventType and delivered by
// ProcessEvents.
func NewDonburiStore(world donburi.World) scenescroller.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scenescroller.StructureEvent) {
	StructureEventType.Publish(s.world, event)
}
