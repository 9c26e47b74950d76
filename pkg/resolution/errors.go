package resolution

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSource is returned when outgoing edges name a source that was never visited
	ErrUnknownSource = errors.New("source component was not visited")

	// ErrUnknownTarget is returned when a resolved edge names a target that was never visited
	ErrUnknownTarget = errors.New("target component was not visited")

	// ErrRootNotFound is returned when Complete is called for a root that was never visited
	ErrRootNotFound = errors.New("root component not found")

	// ErrBuilderCompleted is returned when a builder is used after Complete
	ErrBuilderCompleted = errors.New("builder already completed")

	// ErrConflictingVisit is returned in strict mode when a component is visited twice with different attributes
	ErrConflictingVisit = errors.New("component visited with conflicting attributes")
)

// ContractViolationError reports a visitation sequence that breaks the builder's
// ordering contract. It names the operation and the offending identity.
type ContractViolationError struct {
	Op  string
	ID  ComponentID
	Err error
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("%s: component %d: %v", e.Op, e.ID, e.Err)
}

func (e *ContractViolationError) Unwrap() error {
	return e.Err
}

// IsContractViolation reports whether err is a ContractViolationError
func IsContractViolation(err error) bool {
	var cv *ContractViolationError
	return errors.As(err, &cv)
}
