package expressions

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Expression is implemented by every renderable aggregation expression node.
//
// Render converts the node into its final bson.D wire form using the given
// RenderContext to resolve field references. Any value implementing this
// interface is treated as a nested expression (not a literal) when wrapped
// into an Operand.
type Expression interface {
	Render(ctx RenderContext) (bson.D, error)
}

// RenderContext supplies field-reference resolution during Render.
//
// Implementations must be deterministic and side-effect-free: resolving the
// same name twice yields the same result. Resolution failures should satisfy
// errors.Is(err, ErrUnresolvedFieldReference) so that callers can detect them
// after the error propagated through nested renders.
type RenderContext interface {
	ResolveFieldReference(fieldName FieldNameString) (string, error)
}

/***** DirectContext *****/

// DirectContext resolves field references to the MongoDB field-path syntax
// ("name" -> "$name") without validating them against a schema.
type DirectContext struct{}

// NewDirectContext creates a DirectContext.
func NewDirectContext() DirectContext {
	return DirectContext{}
}

// ResolveFieldReference resolves a non-empty field name to "$" + name.
func (DirectContext) ResolveFieldReference(fieldName FieldNameString) (string, error) {
	if fieldName == "" {
		return "", ErrEmptyFieldReference
	}

	return "$" + fieldName, nil
}

/***** StrictContext *****/

// StrictContext resolves only field references registered up front and fails
// with ErrUnresolvedFieldReference for everything else.
//
// A dotted path ("address.city") resolves if either the full path or its root
// segment ("address") is registered.
type StrictContext struct {
	knownFieldNames map[FieldNameString]struct{}
}

// NewStrictContext creates a StrictContext that accepts the given field names.
func NewStrictContext(fieldNames ...FieldNameString) StrictContext {
	known := make(map[FieldNameString]struct{}, len(fieldNames))
	for _, fieldName := range fieldNames {
		if fieldName == "" {
			continue
		}
		known[fieldName] = struct{}{}
	}

	return StrictContext{knownFieldNames: known}
}

// ResolveFieldReference resolves a registered field name to "$" + name,
// or fails with an error satisfying errors.Is(err, ErrUnresolvedFieldReference).
func (sc StrictContext) ResolveFieldReference(fieldName FieldNameString) (string, error) {
	if fieldName == "" {
		return "", ErrEmptyFieldReference
	}

	if _, ok := sc.knownFieldNames[fieldName]; ok {
		return "$" + fieldName, nil
	}

	if rootSegment, _, isPath := strings.Cut(fieldName, "."); isPath {
		if _, ok := sc.knownFieldNames[rootSegment]; ok {
			return "$" + fieldName, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnresolvedFieldReference, fieldName)
}
