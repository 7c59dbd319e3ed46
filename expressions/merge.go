package expressions

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const mergeObjectsOperator = "$mergeObjects"

/***** MergeObjects *****/

// MergeObjects is the aggregation expression for $mergeObjects, combining
// multiple documents into a single document. Operand order is the merge
// precedence order: on key conflicts, later operands override earlier ones.
//
// MergeObjects values are immutable. Every MergeWith* method returns a new
// expression with the extended operand sequence and leaves the receiver
// untouched, so a shared base expression can be extended independently from
// multiple call sites.
type MergeObjects struct {
	operands []Operand
}

// Merge creates a MergeObjects expression from zero or more raw values.
//
// Each value is auto-wrapped: values implementing Expression become nested
// expressions, everything else becomes a literal. A merge with zero values
// is valid and renders an empty operand sequence.
func Merge(values ...any) (MergeObjects, error) {
	operands, wrapErr := wrapEach(values, WrapOperand)
	if wrapErr != nil {
		return MergeObjects{}, wrapErr
	}

	return MergeObjects{operands: operands}, nil
}

// MergeValuesOf creates a MergeObjects expression from the values of the
// given field references.
func MergeValuesOf(fieldReferences ...FieldNameString) (MergeObjects, error) {
	operands, wrapErr := wrapEach(fieldReferences, FieldOperand)
	if wrapErr != nil {
		return MergeObjects{}, wrapErr
	}

	return MergeObjects{operands: operands}, nil
}

// MergeExpressionsOf creates a MergeObjects expression from the results of
// the given expressions.
func MergeExpressionsOf(expressions ...Expression) (MergeObjects, error) {
	operands, wrapErr := wrapEach(expressions, ExpressionOperand)
	if wrapErr != nil {
		return MergeObjects{}, wrapErr
	}

	return MergeObjects{operands: operands}, nil
}

// MergeWith returns a new MergeObjects expression extended with the given
// raw values, auto-wrapped like in Merge.
func (m MergeObjects) MergeWith(values ...any) (MergeObjects, error) {
	operands, wrapErr := wrapEach(values, WrapOperand)
	if wrapErr != nil {
		return MergeObjects{}, wrapErr
	}

	return m.extendedWith(operands), nil
}

// MergeWithValuesOf returns a new MergeObjects expression extended with the
// values of the given field references.
func (m MergeObjects) MergeWithValuesOf(fieldReferences ...FieldNameString) (MergeObjects, error) {
	operands, wrapErr := wrapEach(fieldReferences, FieldOperand)
	if wrapErr != nil {
		return MergeObjects{}, wrapErr
	}

	return m.extendedWith(operands), nil
}

// MergeWithExpressionsOf returns a new MergeObjects expression extended with
// the results of the given expressions.
func (m MergeObjects) MergeWithExpressionsOf(expressions ...Expression) (MergeObjects, error) {
	operands, wrapErr := wrapEach(expressions, ExpressionOperand)
	if wrapErr != nil {
		return MergeObjects{}, wrapErr
	}

	return m.extendedWith(operands), nil
}

// extendedWith builds the extended expression on a fresh backing array, so
// two independent extensions of the same receiver never observe each other.
func (m MergeObjects) extendedWith(operands []Operand) MergeObjects {
	combined := make([]Operand, 0, len(m.operands)+len(operands))
	combined = append(combined, m.operands...)
	combined = append(combined, operands...)

	return MergeObjects{operands: combined}
}

// Operands returns a copy of the ordered operand sequence.
func (m MergeObjects) Operands() []Operand {
	operands := make([]Operand, len(m.operands))
	copy(operands, m.operands)

	return operands
}

// Render converts the expression to {"$mergeObjects": <payload>}.
//
// The payload is the ordered sequence of rendered operands, except that a
// one-operand merge serializes its operand bare. A zero-operand merge
// renders an empty sequence, not an error.
func (m MergeObjects) Render(ctx RenderContext) (bson.D, error) {
	if ctx == nil {
		return nil, ErrNilRenderContext
	}

	rendered, renderErr := renderOperands(ctx, m.operands)
	if renderErr != nil {
		return nil, renderErr
	}

	return bson.D{{Key: mergeObjectsOperator, Value: potentiallyUnwrapSingleOperand(rendered)}}, nil
}

// potentiallyUnwrapSingleOperand applies the single-operand normalization:
// $mergeObjects accepts both a single document and an array of documents,
// and a one-operand merge serializes its operand unwrapped. This is a quirk
// of the $mergeObjects grammar, not shared with the other object operators.
func potentiallyUnwrapSingleOperand(rendered bson.A) any {
	if len(rendered) == 1 {
		return rendered[0]
	}

	return rendered
}
