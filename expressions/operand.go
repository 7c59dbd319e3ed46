package expressions

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type operandKind int

const (
	operandKindLiteral operandKind = iota + 1
	operandKindFieldReference
	operandKindExpression
)

/***** Operand *****/

// Operand is one input to an expression: a literal value, a field reference,
// or a nested expression. The kind is decided once at construction time.
//
// While the zero value exists, an Operand should only be constructed with the
// supplied factory methods:
//   - LiteralOperand
//   - FieldOperand
//   - ExpressionOperand
//   - WrapOperand
type Operand struct {
	kind       operandKind
	literal    any
	fieldName  FieldNameString
	expression Expression
}

// LiteralOperand wraps a raw value as a literal operand.
func LiteralOperand(value any) (Operand, error) {
	if value == nil {
		return Operand{}, ErrNilValue
	}

	return Operand{kind: operandKindLiteral, literal: value}, nil
}

// FieldOperand wraps a field name as a field-reference operand.
// Resolution to the field-path syntax is deferred to render time.
func FieldOperand(fieldName FieldNameString) (Operand, error) {
	if fieldName == "" {
		return Operand{}, ErrEmptyFieldReference
	}

	return Operand{kind: operandKindFieldReference, fieldName: fieldName}, nil
}

// ExpressionOperand wraps an expression as a nested-expression operand.
func ExpressionOperand(expression Expression) (Operand, error) {
	if expression == nil {
		return Operand{}, ErrNilExpression
	}

	return Operand{kind: operandKindExpression, expression: expression}, nil
}

// WrapOperand wraps an arbitrary value as an Operand.
//
// An Operand passes through unchanged, a value implementing Expression
// becomes a nested-expression operand (never a literal, so expressions are
// not double-wrapped), everything else becomes a literal operand.
func WrapOperand(value any) (Operand, error) {
	if value == nil {
		return Operand{}, ErrNilValue
	}

	switch typedValue := value.(type) {
	case Operand:
		if typedValue.kind == 0 {
			return Operand{}, ErrNilOperand
		}

		return typedValue, nil

	case Expression:
		return ExpressionOperand(typedValue)

	default:
		return LiteralOperand(value)
	}
}

// IsLiteral reports whether the operand wraps a literal value.
func (o Operand) IsLiteral() bool {
	return o.kind == operandKindLiteral
}

// IsFieldReference reports whether the operand wraps a field reference.
func (o Operand) IsFieldReference() bool {
	return o.kind == operandKindFieldReference
}

// IsExpression reports whether the operand wraps a nested expression.
func (o Operand) IsExpression() bool {
	return o.kind == operandKindExpression
}

// FieldName returns the wrapped field name, or "" for non-field operands.
func (o Operand) FieldName() FieldNameString {
	return o.fieldName
}

// render converts the operand to its wire form: field references resolve
// through the context, nested expressions recurse, literals render as
// themselves (defensively copied when mutable).
func (o Operand) render(ctx RenderContext) (any, error) {
	switch o.kind {
	case operandKindFieldReference:
		reference, resolveErr := ctx.ResolveFieldReference(o.fieldName)
		if resolveErr != nil {
			return nil, resolveErr
		}

		return reference, nil

	case operandKindExpression:
		document, renderErr := o.expression.Render(ctx)
		if renderErr != nil {
			return nil, renderErr
		}

		return document, nil

	case operandKindLiteral:
		return renderLiteral(o.literal), nil

	default:
		return nil, ErrNilOperand
	}
}

/***** wrapping helpers *****/

// wrapEach maps every input through the given wrapping strategy, failing on
// the first input the strategy rejects.
func wrapEach[T any](inputs []T, wrap func(T) (Operand, error)) ([]Operand, error) {
	operands := make([]Operand, 0, len(inputs))
	for _, input := range inputs {
		operand, wrapErr := wrap(input)
		if wrapErr != nil {
			return nil, wrapErr
		}

		operands = append(operands, operand)
	}

	return operands, nil
}

// renderOperands renders each operand in order, failing on the first
// resolution or render error.
func renderOperands(ctx RenderContext, operands []Operand) (bson.A, error) {
	rendered := make(bson.A, 0, len(operands))
	for _, operand := range operands {
		value, renderErr := operand.render(ctx)
		if renderErr != nil {
			return nil, renderErr
		}

		rendered = append(rendered, value)
	}

	return rendered, nil
}

// RenderValue wraps value as an Operand and renders it immediately.
// It is meant for callers that embed plain values and field operands next to
// full expressions when assembling pipeline stages.
func RenderValue(ctx RenderContext, value any) (any, error) {
	if ctx == nil {
		return nil, ErrNilRenderContext
	}

	operand, wrapErr := WrapOperand(value)
	if wrapErr != nil {
		return nil, wrapErr
	}

	return operand.render(ctx)
}
