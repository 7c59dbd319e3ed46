// Package pipeline assembles aggregation pipeline stage documents from
// expressions. It is the rendering pass that supplies the RenderContext:
// stages are recorded as the builder methods are called, and every embedded
// expression is rendered when Build runs.
//
// The package produces []bson.D only. It never connects to a database and
// never executes what it builds; pass the result to the driver's Aggregate
// in client code.
//
// Common usage pattern:
//
//	builder, err := pipeline.NewBuilder(
//		pipeline.WithRenderContext(expressions.NewStrictContext("delivery", "status")),
//	)
//	if err != nil {
//		// handle error
//	}
//
//	merged, err := expressions.MergeValuesOf("delivery", "status")
//	if err != nil {
//		// handle error
//	}
//
//	stages, err := builder.
//		AddFields(pipeline.ComputedField{Name: "combined", Expression: merged}).
//		Build()
package pipeline
