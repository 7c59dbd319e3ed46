package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/docpipe/aggregation-expressions-go/expressions"
)

const (
	groupStageOperator       = "$group"
	projectStageOperator     = "$project"
	addFieldsStageOperator   = "$addFields"
	replaceRootStageOperator = "$replaceRoot"
)

var ErrEmptyStageFieldName = errors.New("stage field name must not be empty")

/***** stage field types *****/

// AccumulatorField names one accumulator expression within a $group stage.
type AccumulatorField struct {
	Name       string
	Expression expressions.Expression
}

// ComputedField names one computed expression within an $addFields stage.
type ComputedField struct {
	Name       string
	Expression expressions.Expression
}

// ProjectedField names one field within a $project stage. A nil Expression
// means plain inclusion of the field.
type ProjectedField struct {
	Name       string
	Expression expressions.Expression
}

/***** Builder *****/

// renderStageFunc renders one recorded stage through the configured context.
type renderStageFunc func(ctx expressions.RenderContext) (bson.D, error)

// Builder assembles an aggregation pipeline stage by stage. Stage methods
// record the stage and return the Builder for chaining; rendering and
// validation happen in Build.
type Builder struct {
	renderContext expressions.RenderContext
	stages        []renderStageFunc
}

// NewBuilder creates a Builder with optional configuration.
func NewBuilder(options ...Option) (*Builder, error) {
	b := &Builder{
		renderContext: expressions.NewDirectContext(),
	}

	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Group appends a $group stage with the given group id and accumulator
// fields. A nil id groups the whole input into a single document.
func (b *Builder) Group(id any, fields ...AccumulatorField) *Builder {
	b.stages = append(b.stages, func(ctx expressions.RenderContext) (bson.D, error) {
		args := bson.D{{Key: "_id", Value: nil}}

		if id != nil {
			renderedID, renderErr := expressions.RenderValue(ctx, id)
			if renderErr != nil {
				return nil, renderErr
			}

			args[0].Value = renderedID
		}

		accumulators, renderErr := renderNamedExpressions(ctx, groupStageOperator, fields,
			func(f AccumulatorField) (string, expressions.Expression) { return f.Name, f.Expression })
		if renderErr != nil {
			return nil, renderErr
		}

		args = append(args, accumulators...)

		return bson.D{{Key: groupStageOperator, Value: args}}, nil
	})

	return b
}

// Project appends a $project stage with the given fields. Fields without an
// expression are plain inclusions.
func (b *Builder) Project(fields ...ProjectedField) *Builder {
	b.stages = append(b.stages, func(ctx expressions.RenderContext) (bson.D, error) {
		args := bson.D{}

		for _, field := range fields {
			if field.Name == "" {
				return nil, fmt.Errorf("%w in %s stage", ErrEmptyStageFieldName, projectStageOperator)
			}

			if field.Expression == nil {
				args = append(args, bson.E{Key: field.Name, Value: 1})
				continue
			}

			rendered, renderErr := field.Expression.Render(ctx)
			if renderErr != nil {
				return nil, renderErr
			}

			args = append(args, bson.E{Key: field.Name, Value: rendered})
		}

		return bson.D{{Key: projectStageOperator, Value: args}}, nil
	})

	return b
}

// AddFields appends an $addFields stage with the given computed fields.
func (b *Builder) AddFields(fields ...ComputedField) *Builder {
	b.stages = append(b.stages, func(ctx expressions.RenderContext) (bson.D, error) {
		args, renderErr := renderNamedExpressions(ctx, addFieldsStageOperator, fields,
			func(f ComputedField) (string, expressions.Expression) { return f.Name, f.Expression })
		if renderErr != nil {
			return nil, renderErr
		}

		return bson.D{{Key: addFieldsStageOperator, Value: args}}, nil
	})

	return b
}

// ReplaceRoot appends a $replaceRoot stage promoting the result of the given
// expression to the new document root.
func (b *Builder) ReplaceRoot(newRoot expressions.Expression) *Builder {
	b.stages = append(b.stages, func(ctx expressions.RenderContext) (bson.D, error) {
		if newRoot == nil {
			return nil, expressions.ErrNilExpression
		}

		rendered, renderErr := newRoot.Render(ctx)
		if renderErr != nil {
			return nil, renderErr
		}

		return bson.D{{Key: replaceRootStageOperator, Value: bson.D{{Key: "newRoot", Value: rendered}}}}, nil
	})

	return b
}

// Build renders all recorded stages in order through the configured
// RenderContext, failing fast on the first render or validation error.
func (b *Builder) Build() ([]bson.D, error) {
	stages := make([]bson.D, 0, len(b.stages))

	for _, renderStage := range b.stages {
		stage, renderErr := renderStage(b.renderContext)
		if renderErr != nil {
			return nil, renderErr
		}

		stages = append(stages, stage)
	}

	return stages, nil
}

// renderNamedExpressions renders name/expression pairs into document
// entries, rejecting empty names and nil expressions.
func renderNamedExpressions[T any](
	ctx expressions.RenderContext,
	stageOperator string,
	fields []T,
	split func(T) (string, expressions.Expression),
) (bson.D, error) {

	entries := bson.D{}

	for _, field := range fields {
		name, expression := split(field)

		if name == "" {
			return nil, fmt.Errorf("%w in %s stage", ErrEmptyStageFieldName, stageOperator)
		}

		if expression == nil {
			return nil, fmt.Errorf("%w for field %q in %s stage", expressions.ErrNilExpression, name, stageOperator)
		}

		rendered, renderErr := expression.Render(ctx)
		if renderErr != nil {
			return nil, renderErr
		}

		entries = append(entries, bson.E{Key: name, Value: rendered})
	}

	return entries, nil
}

// DebugJSON serializes an assembled pipeline to indented extended JSON for
// logging and inspection in client code.
func DebugJSON(stages []bson.D) (string, error) {
	rawStages := make([]json.RawMessage, 0, len(stages))

	for _, stage := range stages {
		raw, marshalErr := bson.MarshalExtJSON(stage, false, false)
		if marshalErr != nil {
			return "", fmt.Errorf("marshalling pipeline stage to extended json failed: %w", marshalErr)
		}

		rawStages = append(rawStages, raw)
	}

	buf, marshalErr := jsoniter.ConfigFastest.MarshalIndent(rawStages, "", "  ")
	if marshalErr != nil {
		return "", fmt.Errorf("marshalling pipeline to json failed: %w", marshalErr)
	}

	return string(buf), nil
}
