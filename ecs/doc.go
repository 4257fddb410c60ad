// Package ecs provides ECS adapters for scenescroller's structural events.
//
// The primary adapter is [NewDonburiStore], which bridges the change:parent
// and change:children events of a scene's tree into a [Donburi] world as
// typed events. Subscribe to [StructureEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
