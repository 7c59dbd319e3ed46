package expressions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/docpipe/aggregation-expressions-go/expressions"
)

func Test_ObjectToArray_RendersItsOperandBare(t *testing.T) {
	ctx := expressions.NewDirectContext()

	factory, err := expressions.ValueOf("attributes")
	require.NoError(t, err)

	rendered, renderErr := factory.ObjectToArray().Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$objectToArray", Value: "$attributes"}}, rendered)
}

func Test_BuildObjectToArray_AcceptsExpressions(t *testing.T) {
	ctx := expressions.NewDirectContext()

	merged, err := expressions.MergeValuesOf("a", "b")
	require.NoError(t, err)

	toArray, err := expressions.BuildObjectToArray(merged)
	require.NoError(t, err)

	rendered, renderErr := toArray.Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$objectToArray", Value: bson.D{
		{Key: "$mergeObjects", Value: bson.A{"$a", "$b"}},
	}}}, rendered)
}

func Test_BuildObjectToArray_RejectsNilValue(t *testing.T) {
	_, err := expressions.BuildObjectToArray(nil)

	assert.ErrorIs(t, err, expressions.ErrNilValue)
}

func Test_GetField_ShorthandWithoutInput(t *testing.T) {
	ctx := expressions.NewDirectContext()

	getField, err := expressions.BuildGetField("status")
	require.NoError(t, err)

	rendered, renderErr := getField.Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$getField", Value: "status"}}, rendered)
}

func Test_GetField_WithInput(t *testing.T) {
	ctx := expressions.NewDirectContext()

	getField, err := expressions.BuildGetField("status")
	require.NoError(t, err)

	withInput, err := getField.Of(bson.D{{Key: "status", Value: "open"}})
	require.NoError(t, err)

	rendered, renderErr := withInput.Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$getField", Value: bson.D{
		{Key: "field", Value: "status"},
		{Key: "input", Value: bson.D{{Key: "status", Value: "open"}}},
	}}}, rendered)
}

func Test_GetField_OfDoesNotMutateTheReceiver(t *testing.T) {
	ctx := expressions.NewDirectContext()

	base, err := expressions.BuildGetField("status")
	require.NoError(t, err)

	_, err = base.Of(bson.D{{Key: "status", Value: "open"}})
	require.NoError(t, err)

	rendered, renderErr := base.Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$getField", Value: "status"}}, rendered)
}

func Test_GetField_ViaFactoryUsesTheFactoryValueAsInput(t *testing.T) {
	ctx := expressions.NewDirectContext()

	factory, err := expressions.ValueOf("delivery")
	require.NoError(t, err)

	getField, err := factory.GetField("status")
	require.NoError(t, err)

	rendered, renderErr := getField.Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$getField", Value: bson.D{
		{Key: "field", Value: "status"},
		{Key: "input", Value: "$delivery"},
	}}}, rendered)
}

func Test_BuildGetField_RejectsEmptyFieldName(t *testing.T) {
	_, err := expressions.BuildGetField("")

	assert.ErrorIs(t, err, expressions.ErrEmptyFieldReference)
}

//nolint:funlen
func Test_SetField_RenderedDocumentShapes(t *testing.T) {
	ctx := expressions.NewDirectContext()

	tests := []struct {
		name     string
		build    func(t *testing.T) expressions.SetField
		expected bson.D
	}{
		{
			name: "defaults_to_current_document_and_null_value",
			build: func(t *testing.T) expressions.SetField {
				setField, err := expressions.BuildSetField("status")
				require.NoError(t, err)
				return setField
			},
			expected: bson.D{{Key: "$setField", Value: bson.D{
				{Key: "field", Value: "status"},
				{Key: "input", Value: "$$CURRENT"},
				{Key: "value", Value: nil},
			}}},
		},
		{
			name: "with_input_and_literal_value",
			build: func(t *testing.T) expressions.SetField {
				setField, err := expressions.BuildSetField("status")
				require.NoError(t, err)

				withInput, err := setField.Input(bson.D{{Key: "status", Value: "open"}})
				require.NoError(t, err)

				withValue, err := withInput.ToValue("closed")
				require.NoError(t, err)
				return withValue
			},
			expected: bson.D{{Key: "$setField", Value: bson.D{
				{Key: "field", Value: "status"},
				{Key: "input", Value: bson.D{{Key: "status", Value: "open"}}},
				{Key: "value", Value: "closed"},
			}}},
		},
		{
			name: "to_value_of_resolves_a_field_reference",
			build: func(t *testing.T) expressions.SetField {
				setField, err := expressions.BuildSetField("status")
				require.NoError(t, err)

				withValue, err := setField.ToValueOf("lastStatus")
				require.NoError(t, err)
				return withValue
			},
			expected: bson.D{{Key: "$setField", Value: bson.D{
				{Key: "field", Value: "status"},
				{Key: "input", Value: "$$CURRENT"},
				{Key: "value", Value: "$lastStatus"},
			}}},
		},
		{
			name: "remove_value_sets_the_remove_variable",
			build: func(t *testing.T) expressions.SetField {
				setField, err := expressions.BuildSetField("status")
				require.NoError(t, err)
				return setField.RemoveValue()
			},
			expected: bson.D{{Key: "$setField", Value: bson.D{
				{Key: "field", Value: "status"},
				{Key: "input", Value: "$$CURRENT"},
				{Key: "value", Value: "$$REMOVE"},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setField := tt.build(t)

			rendered, renderErr := setField.Render(ctx)

			require.NoError(t, renderErr)
			assert.Equal(t, tt.expected, rendered)
		})
	}
}

func Test_SetField_ViaFactoryUsesTheFactoryValueAsInput(t *testing.T) {
	ctx := expressions.NewDirectContext()

	factory, err := expressions.ValueOf("delivery")
	require.NoError(t, err)

	setField, err := factory.SetField("status")
	require.NoError(t, err)

	withValue, err := setField.ToValue("closed")
	require.NoError(t, err)

	rendered, renderErr := withValue.Render(ctx)

	require.NoError(t, renderErr)
	assert.Equal(t, bson.D{{Key: "$setField", Value: bson.D{
		{Key: "field", Value: "status"},
		{Key: "input", Value: "$delivery"},
		{Key: "value", Value: "closed"},
	}}}, rendered)
}

func Test_UnresolvedFieldReferencesPropagateUnchangedThroughNestedRenders(t *testing.T) {
	ctx := expressions.NewStrictContext("delivery")

	nested, err := expressions.MergeValuesOf("unknown")
	require.NoError(t, err)

	outer, err := expressions.MergeValuesOf("delivery")
	require.NoError(t, err)

	outer, err = outer.MergeWithExpressionsOf(nested)
	require.NoError(t, err)

	_, renderErr := outer.Render(ctx)

	require.Error(t, renderErr)
	assert.ErrorIs(t, renderErr, expressions.ErrUnresolvedFieldReference)
	assert.Contains(t, renderErr.Error(), `"unknown"`)
}
