package scenescroller

// Event is what a listener receives when an event it is registered for fires.
type Event struct {
	// Name is the concrete event name being dispatched, even when the emit
	// used a pattern key.
	Name string
	// Target is the emitting hub's owner: the *Node, *Entity or *Scene for
	// tree nodes, otherwise the *Hub itself.
	Target any
	// Args are the arguments passed to Emit or EmitEvent.
	Args []any
}

// Arg returns the i-th argument, or nil if there is none.
func (e Event) Arg(i int) any {
	if i < 0 || i >= len(e.Args) {
		return nil
	}
	return e.Args[i]
}

// ListenerFunc is the callback signature. If the returned value equals the
// hub's once-return value (true by default) the listener is removed after
// this call.
type ListenerFunc func(evt Event) any

// Listener is the identity under which a callback is registered. Go funcs are
// not comparable, so registration, duplicate detection and removal all work
// on *Listener handles.
type Listener struct {
	fn ListenerFunc
}

// NewListener wraps fn in a new listener handle.
func NewListener(fn ListenerFunc) *Listener {
	if fn == nil {
		panic("scenescroller: nil listener func")
	}
	return &Listener{fn: fn}
}

// Call invokes the listener directly, outside of any hub.
func (l *Listener) Call(evt Event) any {
	return l.fn(evt)
}

// listenerEntry is one registration of a listener under an event name.
// permanent entries are never removed for returning the once-return value.
type listenerEntry struct {
	listener  *Listener
	once      bool
	permanent bool
}

// Listeners is the ordered registration list of one event name. It is a live
// view: changes made through it are seen by the hub, and changes made by the
// hub are seen through it.
type Listeners struct {
	entries []*listenerEntry
}

// Len returns the number of registered listeners.
func (ls *Listeners) Len() int {
	return len(ls.entries)
}

// At returns the i-th listener in registration order and whether it is a
// once listener.
func (ls *Listeners) At(i int) (*Listener, bool) {
	e := ls.entries[i]
	return e.listener, e.once
}

// Flatten returns the listeners in registration order, without once flags.
func (ls *Listeners) Flatten() []*Listener {
	out := make([]*Listener, 0, len(ls.entries))
	for _, e := range ls.entries {
		out = append(out, e.listener)
	}
	return out
}

// Contains reports whether l is registered.
func (ls *Listeners) Contains(l *Listener) bool {
	return ls.indexOf(l) != -1
}

// Add registers l at the end of the list. It reports false and changes
// nothing if l is already registered, whatever its once flag.
func (ls *Listeners) Add(l *Listener, once bool) bool {
	return ls.add(&listenerEntry{listener: l, once: once})
}

func (ls *Listeners) add(e *listenerEntry) bool {
	if e.listener == nil || ls.indexOf(e.listener) != -1 {
		return false
	}
	ls.entries = append(ls.entries, e)
	return true
}

// Remove unregisters l. It reports whether l was registered.
func (ls *Listeners) Remove(l *Listener) bool {
	i := ls.indexOf(l)
	if i == -1 {
		return false
	}
	ls.removeAt(i)
	return true
}

// indexOf searches from the end, the way dispatch walks the list.
func (ls *Listeners) indexOf(l *Listener) int {
	for i := len(ls.entries) - 1; i >= 0; i-- {
		if ls.entries[i].listener == l {
			return i
		}
	}
	return -1
}

func (ls *Listeners) hasEntry(e *listenerEntry) bool {
	for _, cur := range ls.entries {
		if cur == e {
			return true
		}
	}
	return false
}

func (ls *Listeners) removeEntry(e *listenerEntry) {
	for i, cur := range ls.entries {
		if cur == e {
			ls.removeAt(i)
			return
		}
	}
}

// removeAt splices entry i out with copy+nil so the backing array does not
// retain the dropped entry.
func (ls *Listeners) removeAt(i int) {
	copy(ls.entries[i:], ls.entries[i+1:])
	ls.entries[len(ls.entries)-1] = nil
	ls.entries = ls.entries[:len(ls.entries)-1]
}
