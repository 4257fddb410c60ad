package scenescroller

import (
	"time"

	"github.com/google/uuid"
)

// Entity is a tree node that records when it was created and carries a
// globally unique id. It behaves exactly like its embedded Node; listeners
// receive the *Entity as Event.Target.
type Entity struct {
	*Node

	UUID    string
	Created time.Time
}

// NewEntity creates an entity. opts are the node options (see
// NewNodeWithOptions).
func NewEntity(opts Options) (*Entity, error) {
	e := &Entity{
		UUID:    uuid.NewString(),
		Created: time.Now(),
	}
	if _, err := buildNode(opts, e, &e.Node); err != nil {
		return nil, err
	}
	return e, nil
}

// Age returns how long ago the entity was created.
func (e *Entity) Age() time.Duration {
	return time.Since(e.Created)
}
