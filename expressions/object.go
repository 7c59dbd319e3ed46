package expressions

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

const objectToArrayOperator = "$objectToArray"
const getFieldOperator = "$getField"
const setFieldOperator = "$setField"

// currentVariable is the aggregation system variable for the document
// currently being processed.
const currentVariable = "$$CURRENT"

// removeVariable is the aggregation system variable that excludes a field
// when used as the value of $setField.
const removeVariable = "$$REMOVE"

/***** ObjectToArray *****/

// ObjectToArray is the aggregation expression for $objectToArray, converting
// a document to an array of key/value documents. It takes exactly one
// operand and always serializes it bare (no sequence wrapping).
type ObjectToArray struct {
	operand Operand
}

// BuildObjectToArray creates an ObjectToArray expression from a raw value,
// auto-wrapped like in Merge.
func BuildObjectToArray(value any) (ObjectToArray, error) {
	operand, wrapErr := WrapOperand(value)
	if wrapErr != nil {
		return ObjectToArray{}, wrapErr
	}

	return ObjectToArray{operand: operand}, nil
}

// Render converts the expression to {"$objectToArray": <operand>}.
func (o ObjectToArray) Render(ctx RenderContext) (bson.D, error) {
	if ctx == nil {
		return nil, ErrNilRenderContext
	}

	rendered, renderErr := o.operand.render(ctx)
	if renderErr != nil {
		return nil, renderErr
	}

	return bson.D{{Key: objectToArrayOperator, Value: rendered}}, nil
}

/***** GetField *****/

// GetField is the aggregation expression for $getField, reading a named
// field from a document. Without an input it renders the shorthand form
// {"$getField": "<name>"}, which reads from the current document.
//
// GetField values are immutable; Of returns a new expression.
type GetField struct {
	fieldName string
	input     Operand
	hasInput  bool
}

// BuildGetField creates a GetField expression reading the given field from
// the current document.
func BuildGetField(fieldName string) (GetField, error) {
	if fieldName == "" {
		return GetField{}, ErrEmptyFieldReference
	}

	return GetField{fieldName: fieldName}, nil
}

// Of returns a new GetField expression reading from the given input instead
// of the current document. The input is auto-wrapped like in Merge.
func (g GetField) Of(input any) (GetField, error) {
	operand, wrapErr := WrapOperand(input)
	if wrapErr != nil {
		return GetField{}, wrapErr
	}

	g.input = operand
	g.hasInput = true

	return g, nil
}

// Render converts the expression to
// {"$getField": {"field": <name>, "input": <input>}}, or to the shorthand
// {"$getField": <name>} when no input was supplied.
func (g GetField) Render(ctx RenderContext) (bson.D, error) {
	if ctx == nil {
		return nil, ErrNilRenderContext
	}

	if !g.hasInput {
		return bson.D{{Key: getFieldOperator, Value: g.fieldName}}, nil
	}

	input, renderErr := g.input.render(ctx)
	if renderErr != nil {
		return nil, renderErr
	}

	args := bson.D{
		{Key: "field", Value: g.fieldName},
		{Key: "input", Value: input},
	}

	return bson.D{{Key: getFieldOperator, Value: args}}, nil
}

/***** SetField *****/

// SetField is the aggregation expression for $setField, adding, updating or
// removing a named field on a document. Without an input it operates on the
// current document; without a value it sets the field to null.
//
// SetField values are immutable; Input, ToValue, ToValueOf and RemoveValue
// each return a new expression.
type SetField struct {
	fieldName string
	input     Operand
	hasInput  bool
	value     Operand
	hasValue  bool
}

// BuildSetField creates a SetField expression writing the given field on the
// current document.
func BuildSetField(fieldName string) (SetField, error) {
	if fieldName == "" {
		return SetField{}, ErrEmptyFieldReference
	}

	return SetField{fieldName: fieldName}, nil
}

// Input returns a new SetField expression operating on the given input
// instead of the current document. The input is auto-wrapped like in Merge.
func (s SetField) Input(input any) (SetField, error) {
	operand, wrapErr := WrapOperand(input)
	if wrapErr != nil {
		return SetField{}, wrapErr
	}

	s.input = operand
	s.hasInput = true

	return s, nil
}

// ToValue returns a new SetField expression setting the field to the given
// value, auto-wrapped like in Merge.
func (s SetField) ToValue(value any) (SetField, error) {
	operand, wrapErr := WrapOperand(value)
	if wrapErr != nil {
		return SetField{}, wrapErr
	}

	s.value = operand
	s.hasValue = true

	return s, nil
}

// ToValueOf returns a new SetField expression setting the field to the value
// of the given field reference.
func (s SetField) ToValueOf(fieldReference FieldNameString) (SetField, error) {
	operand, wrapErr := FieldOperand(fieldReference)
	if wrapErr != nil {
		return SetField{}, wrapErr
	}

	s.value = operand
	s.hasValue = true

	return s, nil
}

// RemoveValue returns a new SetField expression that removes the field by
// setting it to the $$REMOVE system variable.
func (s SetField) RemoveValue() SetField {
	s.value = Operand{kind: operandKindLiteral, literal: removeVariable}
	s.hasValue = true

	return s
}

// Render converts the expression to
// {"$setField": {"field": <name>, "input": <input>, "value": <value>}}.
// A missing input renders as $$CURRENT, a missing value renders as null.
func (s SetField) Render(ctx RenderContext) (bson.D, error) {
	if ctx == nil {
		return nil, ErrNilRenderContext
	}

	var input any = currentVariable
	if s.hasInput {
		renderedInput, renderErr := s.input.render(ctx)
		if renderErr != nil {
			return nil, renderErr
		}

		input = renderedInput
	}

	var value any
	if s.hasValue {
		renderedValue, renderErr := s.value.render(ctx)
		if renderErr != nil {
			return nil, renderErr
		}

		value = renderedValue
	}

	args := bson.D{
		{Key: "field", Value: s.fieldName},
		{Key: "input", Value: input},
		{Key: "value", Value: value},
	}

	return bson.D{{Key: setFieldOperator, Value: args}}, nil
}
