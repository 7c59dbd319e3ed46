package expressions

/***** ObjectOperatorFactory *****/

// ObjectOperatorFactory binds a starting value (a field reference, an
// expression, or a raw value) and exposes the object-expression operator
// constructors for it.
//
// While its zero value exists, it should only be constructed with the
// supplied factory methods:
//   - ValueOf
//   - ExpressionOf
//   - FromValue
type ObjectOperatorFactory struct {
	value Operand
}

// ValueOf creates an ObjectOperatorFactory taking the value referenced by
// the given field reference.
func ValueOf(fieldReference FieldNameString) (ObjectOperatorFactory, error) {
	operand, wrapErr := FieldOperand(fieldReference)
	if wrapErr != nil {
		return ObjectOperatorFactory{}, wrapErr
	}

	return ObjectOperatorFactory{value: operand}, nil
}

// ExpressionOf creates an ObjectOperatorFactory taking the value provided by
// the given expression.
func ExpressionOf(expression Expression) (ObjectOperatorFactory, error) {
	operand, wrapErr := ExpressionOperand(expression)
	if wrapErr != nil {
		return ObjectOperatorFactory{}, wrapErr
	}

	return ObjectOperatorFactory{value: operand}, nil
}

// FromValue creates an ObjectOperatorFactory from an arbitrary value,
// applying the same wrapping rules as WrapOperand: values implementing
// Expression are treated as nested expressions, not literals.
func FromValue(value any) (ObjectOperatorFactory, error) {
	operand, wrapErr := WrapOperand(value)
	if wrapErr != nil {
		return ObjectOperatorFactory{}, wrapErr
	}

	return ObjectOperatorFactory{value: operand}, nil
}

// Value returns the factory's wrapped starting value.
func (f ObjectOperatorFactory) Value() Operand {
	return f.value
}

// Merge creates a MergeObjects expression whose sole operand is the
// factory's value.
func (f ObjectOperatorFactory) Merge() MergeObjects {
	return MergeObjects{operands: []Operand{f.value}}
}

// MergeWith creates a MergeObjects expression combining the factory's value
// with the given raw values. It is exactly Merge().MergeWith(values...), so
// merging a single thing and merging several things share one code path.
func (f ObjectOperatorFactory) MergeWith(values ...any) (MergeObjects, error) {
	return f.Merge().MergeWith(values...)
}

// MergeWithValuesOf creates a MergeObjects expression combining the
// factory's value with the values of the given field references.
func (f ObjectOperatorFactory) MergeWithValuesOf(fieldReferences ...FieldNameString) (MergeObjects, error) {
	return f.Merge().MergeWithValuesOf(fieldReferences...)
}

// MergeWithExpressionsOf creates a MergeObjects expression combining the
// factory's value with the results of the given expressions.
func (f ObjectOperatorFactory) MergeWithExpressionsOf(expressions ...Expression) (MergeObjects, error) {
	return f.Merge().MergeWithExpressionsOf(expressions...)
}

// ObjectToArray creates an ObjectToArray expression converting the factory's
// value to an array of key/value documents.
func (f ObjectOperatorFactory) ObjectToArray() ObjectToArray {
	return ObjectToArray{operand: f.value}
}

// GetField creates a GetField expression reading the given field from the
// factory's value.
func (f ObjectOperatorFactory) GetField(fieldName string) (GetField, error) {
	getField, buildErr := BuildGetField(fieldName)
	if buildErr != nil {
		return GetField{}, buildErr
	}

	getField.input = f.value
	getField.hasInput = true

	return getField, nil
}

// SetField creates a SetField expression writing the given field on the
// factory's value; the value to set is supplied with ToValue or ToValueOf.
func (f ObjectOperatorFactory) SetField(fieldName string) (SetField, error) {
	setField, buildErr := BuildSetField(fieldName)
	if buildErr != nil {
		return SetField{}, buildErr
	}

	setField.input = f.value
	setField.hasInput = true

	return setField, nil
}
