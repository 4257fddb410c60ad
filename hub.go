package scenescroller

import (
	"fmt"
	"reflect"
	"sort"
)

// Hub manages named listener lists and dispatches events to them. It can be
// used on its own or embedded, as Node does, to give another type events.
//
// A Hub is not safe for concurrent use. Listeners run synchronously on the
// caller's goroutine and may freely call back into the hub.
type Hub struct {
	events map[string]*Listeners
	order  []string // event names in definition order

	onceValue    any
	onceValueSet bool

	target any
}

// NewHub creates an empty hub. Event storage is allocated on first use.
func NewHub() *Hub {
	return &Hub{}
}

// newHubWithOptions receives the options a node constructor did not consume.
// The hub has no options of its own and ignores them.
func newHubWithOptions(Options) Hub {
	return Hub{}
}

// eventMap returns the event storage, creating it if required.
func (h *Hub) eventMap() map[string]*Listeners {
	if h.events == nil {
		h.events = make(map[string]*Listeners)
	}
	return h.events
}

// Listeners returns the live listener list for the event called name,
// defining the event if it does not exist yet.
func (h *Hub) Listeners(name string) *Listeners {
	events := h.eventMap()
	ls, ok := events[name]
	if !ok {
		ls = &Listeners{}
		events[name] = ls
		h.order = append(h.order, name)
	}
	return ls
}

// MatchListeners returns the listener lists selected by key, keyed by event
// name. A pattern key only selects events that are already defined; an exact
// key selects its event, defining it if needed.
func (h *Hub) MatchListeners(key Key) map[string]*Listeners {
	out := make(map[string]*Listeners)
	for _, name := range h.selectNames(key) {
		out[name] = h.events[name]
	}
	return out
}

// ListenersAsMap is MatchListeners under its other name: callers that do not
// care whether key is exact or a pattern always get a map.
func (h *Hub) ListenersAsMap(key Key) map[string]*Listeners {
	return h.MatchListeners(key)
}

// EventNames returns the defined event names in definition order.
func (h *Hub) EventNames() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// selectNames resolves key against the registry in definition order.
func (h *Hub) selectNames(key Key) []string {
	if !key.IsPattern() {
		h.Listeners(key.name)
		return []string{key.name}
	}
	var names []string
	for _, name := range h.order {
		if key.Matches(name) {
			names = append(names, name)
		}
	}
	return names
}

// DefineEvent makes sure the event called name exists, so pattern keys can
// find it before any listener is added.
func (h *Hub) DefineEvent(name string) *Hub {
	h.Listeners(name)
	return h
}

// DefineEvents calls DefineEvent for every name.
func (h *Hub) DefineEvents(names ...string) *Hub {
	for _, name := range names {
		h.DefineEvent(name)
	}
	return h
}

// AddListener registers l on every event selected by key. Events that
// already hold l are left as they are.
func (h *Hub) AddListener(key Key, l *Listener) *Hub {
	return h.addListener(key, l, false)
}

// AddOnceListener is like AddListener but l is removed right before its first
// invocation.
func (h *Hub) AddOnceListener(key Key, l *Listener) *Hub {
	return h.addListener(key, l, true)
}

func (h *Hub) addListener(key Key, l *Listener, once bool) *Hub {
	for _, name := range h.selectNames(key) {
		h.events[name].Add(l, once)
	}
	return h
}

// addPermanentListener registers l so that its return value is ignored. It
// is still removed by RemoveListener and RemoveEvent.
func (h *Hub) addPermanentListener(key Key, l *Listener) {
	for _, name := range h.selectNames(key) {
		h.events[name].add(&listenerEntry{listener: l, permanent: true})
	}
}

// On wraps fn in a new listener, registers it on key and returns the handle
// needed to remove it later.
func (h *Hub) On(key Key, fn ListenerFunc) *Listener {
	l := NewListener(fn)
	h.AddListener(key, l)
	return l
}

// Once wraps fn in a new once listener, registers it on key and returns its handle.
func (h *Hub) Once(key Key, fn ListenerFunc) *Listener {
	l := NewListener(fn)
	h.AddOnceListener(key, l)
	return l
}

// RemoveListener unregisters l from every event selected by key.
func (h *Hub) RemoveListener(key Key, l *Listener) *Hub {
	for _, name := range h.selectNames(key) {
		h.events[name].Remove(l)
	}
	return h
}

// Off is an alias of RemoveListener.
func (h *Hub) Off(key Key, l *Listener) *Hub {
	return h.RemoveListener(key, l)
}

// RemoveEvent deletes the events selected by keys along with their
// listeners. With no keys it deletes every event.
func (h *Hub) RemoveEvent(keys ...Key) *Hub {
	if len(keys) == 0 {
		h.events = nil
		h.order = nil
		return h
	}
	if h.events == nil {
		return h
	}
	for _, key := range keys {
		kept := h.order[:0]
		for _, name := range h.order {
			if key.Matches(name) {
				delete(h.events, name)
				continue
			}
			kept = append(kept, name)
		}
		for i := len(kept); i < len(h.order); i++ {
			h.order[i] = ""
		}
		h.order = kept
	}
	return h
}

// RemoveAllListeners is an alias of RemoveEvent.
func (h *Hub) RemoveAllListeners(keys ...Key) *Hub {
	return h.RemoveEvent(keys...)
}

// AddListeners adds listeners in bulk. See ManipulateListeners for the
// accepted target forms.
func (h *Hub) AddListeners(target any, listeners ...*Listener) error {
	return h.ManipulateListeners(false, target, listeners)
}

// RemoveListeners removes listeners in bulk. See ManipulateListeners for the
// accepted target forms.
func (h *Hub) RemoveListeners(target any, listeners ...*Listener) error {
	return h.ManipulateListeners(true, target, listeners)
}

// ManipulateListeners adds (remove == false) or removes listeners in bulk.
// target is either
//
//   - a string or Key, applied to each of listeners (which must be non-nil), or
//   - a map from event name to *Listener, []*Listener, or any holding one of those.
//
// Map entries are processed in sorted key order. Any other shape returns
// ErrMalformedArguments; entries processed before the bad one stay applied.
func (h *Hub) ManipulateListeners(remove bool, target any, listeners []*Listener) error {
	switch t := target.(type) {
	case string:
		return h.manipulateKey(remove, Name(t), listeners)
	case Key:
		return h.manipulateKey(remove, t, listeners)
	case map[string]*Listener:
		for _, name := range sortedKeys(t) {
			h.manipulateOne(remove, Name(name), t[name])
		}
		return nil
	case map[string][]*Listener:
		for _, name := range sortedKeys(t) {
			if err := h.manipulateKey(remove, Name(name), t[name]); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, name := range sortedKeys(t) {
			switch v := t[name].(type) {
			case *Listener:
				h.manipulateOne(remove, Name(name), v)
			case []*Listener:
				if err := h.manipulateKey(remove, Name(name), v); err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: event %q has value of type %T", ErrMalformedArguments, name, v)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: target of type %T", ErrMalformedArguments, target)
	}
}

// manipulateKey walks listeners last to first, so bulk adds end up
// registered in reverse and therefore dispatched in the order given.
func (h *Hub) manipulateKey(remove bool, key Key, listeners []*Listener) error {
	if listeners == nil {
		return fmt.Errorf("%w: key %s needs a listener slice", ErrMalformedArguments, key)
	}
	for i := len(listeners) - 1; i >= 0; i-- {
		h.manipulateOne(remove, key, listeners[i])
	}
	return nil
}

func (h *Hub) manipulateOne(remove bool, key Key, l *Listener) {
	if remove {
		h.RemoveListener(key, l)
	} else {
		h.AddListener(key, l)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EmitEvent dispatches args to the listeners of every event selected by key.
//
// Within one event, listeners run newest first over the entries registered
// when dispatch of that event started: listeners added during dispatch wait
// for the next emit and listeners removed during dispatch are skipped. A once
// listener is removed before it runs; any other listener is removed after it
// runs if it returned the once-return value.
func (h *Hub) EmitEvent(key Key, args []any) *Hub {
	target := h.target
	if target == nil {
		target = h
	}
	for _, name := range h.selectNames(key) {
		ls, ok := h.events[name]
		if !ok {
			// An earlier listener removed the event.
			continue
		}
		snapshot := make([]*listenerEntry, len(ls.entries))
		copy(snapshot, ls.entries)

		for i := len(snapshot) - 1; i >= 0; i-- {
			entry := snapshot[i]
			if !ls.hasEntry(entry) {
				continue
			}
			if entry.once {
				ls.removeEntry(entry)
			}
			result := entry.listener.fn(Event{Name: name, Target: target, Args: args})
			if !entry.once && !entry.permanent && sameValue(result, h.OnceReturnValue()) {
				ls.removeEntry(entry)
			}
		}
	}
	return h
}

// Emit is EmitEvent with variadic arguments.
func (h *Hub) Emit(key Key, args ...any) *Hub {
	return h.EmitEvent(key, args)
}

// Trigger is an alias of EmitEvent.
func (h *Hub) Trigger(key Key, args []any) *Hub {
	return h.EmitEvent(key, args)
}

// SetOnceReturnValue sets the value that, when returned by a listener, removes
// that listener after the call.
func (h *Hub) SetOnceReturnValue(v any) *Hub {
	h.onceValue = v
	h.onceValueSet = true
	return h
}

// OnceReturnValue returns the value set by SetOnceReturnValue, or true.
func (h *Hub) OnceReturnValue() any {
	if h.onceValueSet {
		return h.onceValue
	}
	return true
}

// sameValue compares listener results with ==, treating values of
// uncomparable types as unequal instead of panicking.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
