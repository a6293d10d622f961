package queryir

import (
	"errors"
	"fmt"

	"github.com/roach88/pgqlir/internal/ir"
)

// Construction errors. Match them with errors.Is; the concrete error is a
// *BuildError carrying the offending kind.
var (
	// ErrInvalidArity means the wrong number of children (or a nil child)
	// was supplied for a kind.
	ErrInvalidArity = errors.New("invalid arity")

	// ErrInvalidPayloadType means a literal or node payload does not match
	// the kind's fixed type, or lies outside its domain.
	ErrInvalidPayloadType = errors.New("invalid payload type")

	// ErrUnresolvedVariable means a variable reference was built without a
	// completed binding.
	ErrUnresolvedVariable = errors.New("unresolved variable")
)

// BuildError reports why a single node could not be constructed.
// Already returned trees are never affected by a failed construction.
type BuildError struct {
	Kind    ir.Kind
	Err     error // one of the sentinel errors above
	Message string
}

func (e *BuildError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Kind, e.Err, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

func arityError(kind ir.Kind, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Err: ErrInvalidArity, Message: fmt.Sprintf(format, args...)}
}

func payloadError(kind ir.Kind, format string, args ...any) *BuildError {
	return &BuildError{Kind: kind, Err: ErrInvalidPayloadType, Message: fmt.Sprintf(format, args...)}
}

func unresolvedError(kind ir.Kind, v ir.QueryVariable) *BuildError {
	return &BuildError{Kind: kind, Err: ErrUnresolvedVariable, Message: fmt.Sprintf("variable %q has no completed binding", v.Name)}
}
