// Package scenescroller provides an in-memory tree of nodes that emit and
// observe events.
//
// # Events
//
// A [Hub] keeps ordered listener lists per event name. Listeners are
// registered through [*Listener] handles, since Go funcs cannot be compared:
//
//	hub := scenescroller.NewHub()
//	l := hub.On(scenescroller.Name("saved"), func(evt scenescroller.Event) any {
//		fmt.Println("saved", evt.Arg(0))
//		return nil
//	})
//	hub.Emit(scenescroller.Name("saved"), "level-1")
//	hub.Off(scenescroller.Name("saved"), l)
//
// Keys are tagged: [Name] selects one event (defining it if needed), while
// [Glob], [Regexp] and [Pattern] select every already defined event they
// match. Use [Hub.DefineEvent] to make an event visible to pattern keys before
// any listener exists.
//
// Dispatch is synchronous. Within one event, the most recently added listener
// runs first. Listeners added while an event is being dispatched run from the
// next emit on. A listener added with [Hub.AddOnceListener] or [Hub.Once] runs
// once; any listener that returns the hub's once-return value (true by
// default, see [Hub.SetOnceReturnValue]) is removed after that call.
//
// # Tree
//
// Every [Node] embeds a Hub. Nodes form trees through [Node.SetParent],
// [Node.AddChild], [Node.AddChildren], [Node.RemoveChild] and
// [Node.RemoveParent]:
//
//	root := scenescroller.NewNode("root")
//	child := scenescroller.NewNode("child")
//	if err := root.AddChild(child); err != nil {
//		return err
//	}
//
// Attaching two nodes that already share a root fails with
// [ErrCycleDetected]; adopting a node that still has a parent fails with
// [ErrAlreadyParented].
//
// Structural changes emit change:parent ([ParentChange]) or change:children
// ([ChildrenChange]); each node rebroadcasts both as change, so one listener
// sees everything:
//
//	root.On(scenescroller.Name(scenescroller.EventChange), func(evt scenescroller.Event) any {
//		log.Printf("%s changed: %+v", evt.Target, evt.Arg(0))
//		return nil
//	})
//
// # Entities and scenes
//
// [Entity] and [Scene] embed *Node and add a creation time and unique id, or
// a render container with frame rate and size. Both are built from
// [Options], parsed with [ParseOptions]. A Scene can forward the structural
// changes of its whole tree to an [EntityStore]; the ecs subpackage provides
// one backed by a Donburi world.
//
// # Debugging
//
// [SetDebugMode] logs every structural mutation and warns about deep trees
// and very wide nodes through the logger set with [SetLogger].
//
// All types are meant for use from a single goroutine.
package scenescroller
