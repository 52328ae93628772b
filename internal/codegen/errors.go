package codegen

import (
	"errors"

	"github.com/elolang/elo/internal/types"
)

// DispatchError is raised by a backend when no registered, generalized,
// or fallback emission routine exists for a call.
type DispatchError struct {
	Name string
	Args []types.Type
}

func (e *DispatchError) Error() string {
	return "no implementation for " + types.Signature(e.Name, e.Args)
}

// IsDispatchError reports whether err is (or wraps) a DispatchError.
func IsDispatchError(err error) bool {
	var de *DispatchError
	return errors.As(err, &de)
}
