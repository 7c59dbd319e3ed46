package expressions

import (
	"errors"
)

var ErrNilValue = errors.New("value must not be nil")
var ErrEmptyFieldReference = errors.New("field reference must not be empty")
var ErrNilExpression = errors.New("expression must not be nil")
var ErrNilOperand = errors.New("operand must not be the zero value")
var ErrNilRenderContext = errors.New("render context must not be nil")
var ErrUnresolvedFieldReference = errors.New("field reference could not be resolved")

// FieldNameString is a type alias for string, representing the name of a field reference.
type FieldNameString = string
