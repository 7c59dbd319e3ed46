package expressions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docpipe/aggregation-expressions-go/expressions"
)

func Test_DirectContext_ResolvesToFieldPathSyntax(t *testing.T) {
	ctx := expressions.NewDirectContext()

	reference, err := ctx.ResolveFieldReference("status")

	assert.NoError(t, err)
	assert.Equal(t, "$status", reference)
}

func Test_DirectContext_RejectsEmptyFieldName(t *testing.T) {
	ctx := expressions.NewDirectContext()

	_, err := ctx.ResolveFieldReference("")

	assert.ErrorIs(t, err, expressions.ErrEmptyFieldReference)
}

func Test_StrictContext_Resolution(t *testing.T) {
	ctx := expressions.NewStrictContext("status", "address", "")

	tests := []struct {
		name              string
		fieldName         string
		expectedReference string
		expectedErr       error
	}{
		{
			name:              "registered_field_resolves",
			fieldName:         "status",
			expectedReference: "$status",
		},
		{
			name:              "dotted_path_resolves_via_root_segment",
			fieldName:         "address.city",
			expectedReference: "$address.city",
		},
		{
			name:        "unknown_field_fails",
			fieldName:   "unknown",
			expectedErr: expressions.ErrUnresolvedFieldReference,
		},
		{
			name:        "dotted_path_with_unknown_root_fails",
			fieldName:   "unknown.city",
			expectedErr: expressions.ErrUnresolvedFieldReference,
		},
		{
			name:        "empty_names_are_not_registered",
			fieldName:   "",
			expectedErr: expressions.ErrEmptyFieldReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reference, err := ctx.ResolveFieldReference(tt.fieldName)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedReference, reference)
		})
	}
}

func Test_StrictContext_ErrorNamesTheUnresolvedField(t *testing.T) {
	ctx := expressions.NewStrictContext("status")

	_, err := ctx.ResolveFieldReference("tracking")

	assert.ErrorIs(t, err, expressions.ErrUnresolvedFieldReference)
	assert.Contains(t, err.Error(), `"tracking"`)
}
