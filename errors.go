package scenescroller

import "errors"

// Sentinel errors returned (wrapped) by hub, node and option operations.
// Use errors.Is to test for them.
var (
	// ErrTypeMismatch is returned when an argument that must be a tree node is not.
	ErrTypeMismatch = errors.New("scenescroller: not a tree node")

	// ErrCycleDetected is returned when attaching would join two nodes of the same tree.
	ErrCycleDetected = errors.New("scenescroller: operation would create a cycle")

	// ErrAlreadyParented is returned by AddChild when the child is still attached elsewhere.
	ErrAlreadyParented = errors.New("scenescroller: child already has a parent")

	// ErrMalformedArguments is returned by the bulk listener operations when the
	// target is neither a key paired with listeners nor an event map.
	ErrMalformedArguments = errors.New("scenescroller: malformed listener arguments")

	// ErrRequiredOption is returned by ParseOptions when a required key is absent.
	ErrRequiredOption = errors.New("scenescroller: required option missing")
)
