package scenescroller

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, structural changes anywhere in the scene's tree are
// forwarded to the store.
type EntityStore interface {
	EmitEvent(event StructureEvent)
}

// StructureEvent is a flattened, id-based copy of a change event for the
// ECS bridge. Node ids of zero mean "none".
type StructureEvent struct {
	Event    string // EventChangeParent or EventChangeChildren
	NodeID   uint32
	NodeName string

	// change:parent fields
	NewParentID uint32
	OldParentID uint32

	// change:children fields
	Added   []uint32
	Removed []uint32
}

const defaultFramerate = 30

// sceneOptionDefaults lists the options consumed by NewScene. The rest are
// node options.
var sceneOptionDefaults = Options{
	"container": Required,
	"framerate": defaultFramerate,
	"width":     0,
	"height":    0,
}

// Scene is the top-level node of a tree. It holds the image the tree is
// meant to be drawn into along with the frame rate and size, and can bridge
// structural changes of its whole subtree to an EntityStore.
type Scene struct {
	*Node

	container *ebiten.Image
	framerate int
	width     int
	height    int

	store   EntityStore
	forward *Listener
}

// NewScene creates a scene from options:
//
//	"container" *ebiten.Image, required
//	"framerate" int, frames per second, default 30
//	"width"     int, default 0 (container width)
//	"height"    int, default 0 (container height)
//
// Remaining options are node options (see NewNodeWithOptions).
func NewScene(opts Options) (*Scene, error) {
	parsed, rest, err := ParseOptions(opts, sceneOptionDefaults)
	if err != nil {
		return nil, err
	}
	container, ok := parsed["container"].(*ebiten.Image)
	if !ok || container == nil {
		return nil, fmt.Errorf("scenescroller: option \"container\" must be a non-nil *ebiten.Image, got %T", parsed["container"])
	}
	framerate, err := intOption(parsed, "framerate")
	if err != nil {
		return nil, err
	}
	if framerate <= 0 {
		return nil, fmt.Errorf("scenescroller: option \"framerate\" must be positive, got %d", framerate)
	}
	width, err := intOption(parsed, "width")
	if err != nil {
		return nil, err
	}
	height, err := intOption(parsed, "height")
	if err != nil {
		return nil, err
	}
	b := container.Bounds()
	if width == 0 {
		width = b.Dx()
	}
	if height == 0 {
		height = b.Dy()
	}

	s := &Scene{
		container: container,
		framerate: framerate,
		width:     width,
		height:    height,
	}
	n, err := buildNode(rest, s, &s.Node)
	if err != nil {
		return nil, err
	}
	s.forward = NewListener(s.onChange)
	s.track(n)
	return s, nil
}

func intOption(parsed Options, key string) (int, error) {
	v, ok := parsed[key].(int)
	if !ok {
		return 0, fmt.Errorf("scenescroller: option %q must be an int, got %T", key, parsed[key])
	}
	return v, nil
}

// Container returns the image the scene draws into.
func (s *Scene) Container() *ebiten.Image {
	return s.container
}

// Framerate returns the scene's frames per second.
func (s *Scene) Framerate() int {
	return s.framerate
}

// Size returns the scene's width and height in pixels.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// SetEntityStore sets the optional ECS bridge. nil disables forwarding.
//
// A node's events reach the store while the scene tracks it, from the
// change:children that adds it under the scene's tree until the one that
// removes it. AddChild emits the child's change:parent before its new
// parent's change:children, so that one is not forwarded; SetParent emits
// them the other way round.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// track subscribes the forwarding listener on n and its descendants. The
// listener is one handle, so nodes already tracked are left as they are.
func (s *Scene) track(n *Node) {
	n.Walk(func(c *Node) bool {
		c.addPermanentListener(Name(EventChange), s.forward)
		return true
	})
}

func (s *Scene) untrack(n *Node) {
	n.Walk(func(c *Node) bool {
		c.RemoveListener(Name(EventChange), s.forward)
		return true
	})
}

// onChange follows subtree membership and forwards the change to the store.
func (s *Scene) onChange(evt Event) any {
	src, ok := evt.Target.(Noder)
	if !ok {
		return nil
	}
	node := src.TreeNode()

	var se StructureEvent
	switch p := evt.Arg(0).(type) {
	case *ChildrenChange:
		for _, c := range p.Added {
			s.track(c)
		}
		for _, c := range p.Removed {
			// A listener may already have put c back under the scene.
			if c.FindRoot() != s.Node.FindRoot() {
				s.untrack(c)
			}
		}
		se = StructureEvent{
			Event:   p.Event,
			Added:   nodeIDs(p.Added),
			Removed: nodeIDs(p.Removed),
		}
	case *ParentChange:
		se = StructureEvent{
			Event:       p.Event,
			NewParentID: nodeID(p.NewParent),
			OldParentID: nodeID(p.OldParent),
		}
	default:
		return nil
	}
	if s.store == nil {
		return nil
	}
	se.NodeID = node.ID
	se.NodeName = node.Name
	s.store.EmitEvent(se)
	return nil
}

func nodeID(n *Node) uint32 {
	if n == nil {
		return 0
	}
	return n.ID
}

func nodeIDs(nodes []*Node) []uint32 {
	ids := make([]uint32, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}
