package scenescroller

import (
	"fmt"
	"reflect"
)

// Events defined on every Node.
const (
	EventChange         = "change"
	EventChangeParent   = "change:parent"
	EventChangeChildren = "change:children"
)

// ParentChange is the payload of change:parent, and of the change event that
// rebroadcasts it. Use Node.Owner to reach the Entity or Scene behind a
// parent.
type ParentChange struct {
	Event     string // always EventChangeParent
	NewParent *Node
	OldParent *Node
}

// ChildrenChange is the payload of change:children, and of the change event
// that rebroadcasts it. Added and Removed are never nil.
type ChildrenChange struct {
	Event   string // always EventChangeChildren
	Added   []*Node
	Removed []*Node
}

// Noder is implemented by *Node and, through embedding, by every type built
// on it (Entity, Scene). Tree operations accept a Noder so those types can be
// passed directly.
type Noder interface {
	TreeNode() *Node
}

// nodeIDCounter is a plain counter (no atomic; the tree is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a tree element with events. It embeds a Hub, so every hub method
// is available on it and listeners receive the node (or the type embedding
// it) as Event.Target.
//
// A node has at most one parent, and a parent's child list holds exactly the
// nodes whose parent it is. Structural changes are announced as
// change:parent on the node whose parent changed and change:children on the
// node whose children changed; both are rebroadcast as change.
type Node struct {
	Hub

	ID   uint32
	Name string

	// Hierarchy. parent does not own the node.
	parent   *Node
	children []*Node

	rebroadcast *Listener
}

// NewNode creates a standalone node with no parent and no children.
func NewNode(name string) *Node {
	n := &Node{Hub: newHubWithOptions(nil), Name: name}
	nodeDefaults(n, nil)
	return n
}

// nodeOptionDefaults lists the options consumed by NewNodeWithOptions.
// Anything else is forwarded to the hub.
var nodeOptionDefaults = Options{
	"name":     "",
	"parent":   nil,
	"children": Optional,
}

// NewNodeWithOptions creates a node from options:
//
//	"name"     string
//	"parent"   Noder to attach to
//	"children" []*Node or []Noder to attach, in order
func NewNodeWithOptions(opts Options) (*Node, error) {
	return buildNode(opts, nil, nil)
}

// buildNode parses the node options and attaches parent and children. target,
// when non-nil, is the value listeners see as Event.Target. slot, when
// non-nil, receives the node before any attach so the embedding type is
// usable from listeners that fire during construction.
func buildNode(opts Options, target any, slot **Node) (*Node, error) {
	parsed, rest, err := ParseOptions(opts, nodeOptionDefaults)
	if err != nil {
		return nil, err
	}
	name, ok := parsed["name"].(string)
	if !ok {
		return nil, fmt.Errorf("scenescroller: option \"name\" must be a string, got %T", parsed["name"])
	}

	n := &Node{Hub: newHubWithOptions(rest), Name: name}
	nodeDefaults(n, target)
	if slot != nil {
		*slot = n
	}

	if p := parsed["parent"]; p != nil {
		parent, ok := p.(Noder)
		if !ok {
			return nil, fmt.Errorf("%w: option \"parent\" is %T", ErrTypeMismatch, p)
		}
		if err := n.SetParent(parent); err != nil {
			return nil, err
		}
	}
	if c, ok := parsed["children"]; ok {
		children, err := toNoders(c)
		if err != nil {
			return nil, err
		}
		if err := n.AddChildren(children...); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func toNoders(v any) ([]Noder, error) {
	switch c := v.(type) {
	case []Noder:
		return c, nil
	case []*Node:
		out := make([]Noder, len(c))
		for i, n := range c {
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: option \"children\" is %T", ErrTypeMismatch, v)
	}
}

// nodeDefaults assigns the id, defines the change events and installs the
// change:* rebroadcast listener.
func nodeDefaults(n *Node, target any) {
	n.ID = nextNodeID()
	n.Hub.target = n
	if target != nil {
		n.Hub.target = target
	}
	n.DefineEvents(EventChange, EventChangeParent, EventChangeChildren)
	n.rebroadcast = NewListener(func(evt Event) any {
		n.EmitEvent(Name(EventChange), evt.Args)
		return nil
	})
	n.addPermanentListener(Glob("change:*"), n.rebroadcast)
}

// TreeNode implements Noder.
func (n *Node) TreeNode() *Node {
	return n
}

// Owner returns the value n belongs to: the *Entity or *Scene embedding it,
// or n itself. Payload nodes are plain *Node values, so listeners use Owner to
// get back to the embedding type:
//
//	e, ok := change.NewParent.Owner().(*Entity)
func (n *Node) Owner() Noder {
	if n == nil {
		return nil
	}
	if o, ok := n.Hub.target.(Noder); ok {
		return o
	}
	return n
}

// String returns "name#id" for logs and test failures.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", n.Name, n.ID)
}

// asNode resolves v to its *Node, rejecting nil interfaces and nil pointers.
func asNode(v Noder, role string) (*Node, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: %s is nil", ErrTypeMismatch, role)
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, fmt.Errorf("%w: %s is a nil %T", ErrTypeMismatch, role, v)
	}
	n := v.TreeNode()
	if n == nil {
		return nil, fmt.Errorf("%w: %s %T has no tree node", ErrTypeMismatch, role, v)
	}
	return n, nil
}

// --- Queries ---

// Parent returns the node's parent, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// IndexOf returns the position of child among n's children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// FindRoot follows parent links to the top and returns that node, which is
// n itself when n has no parent.
func (n *Node) FindRoot() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Depth returns the number of ancestors above n.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// DetectCycle reports whether n and other belong to the same tree, that is,
// share a root. Any attach between two such nodes is refused, including moves
// within one tree that would not strictly close a loop. A node always forms a
// cycle with itself. A nil other never does.
func (n *Node) DetectCycle(other Noder) bool {
	o, err := asNode(other, "other")
	if err != nil {
		return false
	}
	return n.FindRoot() == o.FindRoot()
}

// Walk calls fn for n and every descendant, depth first, parents before
// children. If fn returns false the node's subtree is skipped.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Tree manipulation ---

// SetParent attaches n under p, detaching it from its current parent first.
// A nil p is ignored; use RemoveParent to detach. Fails with
// ErrCycleDetected if p is in n's tree.
//
// The detach from the old parent is not undone when the attach fails, so on
// error n may be missing from its old parent's children while Parent() still
// returns it.
func (n *Node) SetParent(p Noder) error {
	if p == nil {
		return nil
	}
	parent, err := asNode(p, "parent")
	if err != nil {
		return fmt.Errorf("SetParent: %w", err)
	}
	return n.setParent(parent, true)
}

// setParent with addChild == false is the reciprocal half used by addChild.
func (n *Node) setParent(parent *Node, addChild bool) error {
	old := n.parent
	if old != nil {
		old.removeChild(n, false)
	}
	if addChild {
		if err := parent.addChild(n, false, true); err != nil {
			return err
		}
	}
	n.parent = parent
	debugLogMutation("setParent", n, parent)
	n.Emit(Name(EventChangeParent), &ParentChange{
		Event:     EventChangeParent,
		NewParent: parent,
		OldParent: old,
	})
	return nil
}

// AddChild appends child to n's children and makes n its parent.
// Fails with ErrCycleDetected if child is in n's tree and with
// ErrAlreadyParented if child still has a parent.
func (n *Node) AddChild(child Noder) error {
	c, err := asNode(child, "child")
	if err != nil {
		return fmt.Errorf("AddChild: %w", err)
	}
	return n.addChild(c, true, true)
}

// addChild with setParent == false is the reciprocal half used by
// setParent, which has already detached child from its old parent.
func (n *Node) addChild(c *Node, setParent, emit bool) error {
	if n.DetectCycle(c) {
		return fmt.Errorf("%w: cannot add %s under %s", ErrCycleDetected, c, n)
	}
	if setParent && c.parent != nil {
		return fmt.Errorf("%w: %s is attached to %s", ErrAlreadyParented, c, c.parent)
	}
	if setParent {
		if err := c.setParent(n, false); err != nil {
			return err
		}
	}
	n.children = append(n.children, c)
	debugLogMutation("addChild", n, c)
	if globalDebug {
		debugCheckTreeDepth(c)
		debugCheckChildCount(n)
	}
	if emit {
		n.Emit(Name(EventChangeChildren), &ChildrenChange{
			Event:   EventChangeChildren,
			Added:   []*Node{c},
			Removed: []*Node{},
		})
	}
	return nil
}

// AddChildren adds each child in order and then emits a single
// change:children event. If a child fails, the children before it stay
// attached, the event lists only those, and the error is returned.
func (n *Node) AddChildren(children ...Noder) error {
	added := make([]*Node, 0, len(children))
	var firstErr error
	for i, child := range children {
		c, err := asNode(child, "child")
		if err == nil {
			err = n.addChild(c, true, false)
		}
		if err != nil {
			firstErr = fmt.Errorf("AddChildren: child %d: %w", i, err)
			break
		}
		added = append(added, c)
	}
	n.Emit(Name(EventChangeChildren), &ChildrenChange{
		Event:   EventChangeChildren,
		Added:   added,
		Removed: []*Node{},
	})
	return firstErr
}

// RemoveChild detaches child from n. It does nothing if child is not one of
// n's children.
func (n *Node) RemoveChild(child Noder) error {
	c, err := asNode(child, "child")
	if err != nil {
		return fmt.Errorf("RemoveChild: %w", err)
	}
	n.removeChild(c, true)
	return nil
}

// removeChild with removeParent == false leaves c.parent alone; callers that
// pass false are about to update it themselves.
func (n *Node) removeChild(c *Node, removeParent bool) {
	i := n.IndexOf(c)
	if i == -1 {
		return
	}
	if removeParent {
		c.removeParent(false)
	}
	n.removeChildAt(i)
	debugLogMutation("removeChild", n, c)
	n.Emit(Name(EventChangeChildren), &ChildrenChange{
		Event:   EventChangeChildren,
		Added:   []*Node{},
		Removed: []*Node{c},
	})
}

// removeChildAt splices index i out of n.children without touching the
// child. Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildAt(i int) {
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
}

// RemoveParent detaches n from its parent. change:parent is emitted even
// when n had no parent, with both parents nil.
func (n *Node) RemoveParent() {
	n.removeParent(true)
}

func (n *Node) removeParent(removeChild bool) {
	old := n.parent
	if old != nil && removeChild {
		old.removeChild(n, false)
	}
	n.parent = nil
	debugLogMutation("removeParent", n, old)
	n.Emit(Name(EventChangeParent), &ParentChange{
		Event:     EventChangeParent,
		NewParent: nil,
		OldParent: old,
	})
}

// RemoveChildren detaches every child of n and emits a single
// change:children event listing them. Each child still emits its own
// change:parent, after it has left n's child list. A child that a listener
// moved or removed before its turn is skipped, and one re-attached from its
// own change:parent stays attached.
func (n *Node) RemoveChildren() {
	snapshot := make([]*Node, len(n.children))
	copy(snapshot, n.children)
	removed := make([]*Node, 0, len(snapshot))
	for _, c := range snapshot {
		i := n.IndexOf(c)
		if i == -1 || c.parent != n {
			continue
		}
		n.removeChildAt(i)
		removed = append(removed, c)
		c.removeParent(false)
	}
	debugLogMutation("removeChildren", n, nil)
	n.Emit(Name(EventChangeChildren), &ChildrenChange{
		Event:   EventChangeChildren,
		Added:   []*Node{},
		Removed: removed,
	})
}
