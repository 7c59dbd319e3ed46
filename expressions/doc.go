// Package expressions provides a composable, type-checked builder for
// MongoDB aggregation object-expression operators.
//
// Expression nodes are immutable values: every extension method returns a
// new node and never mutates its receiver, so a shared base expression can
// be extended from multiple goroutines without synchronization. Nodes are
// rendered to bson.D documents through a RenderContext which supplies
// field-reference resolution; the rendered documents are meant to be
// embedded into pipeline stages by client code, this package never talks
// to a database.
//
// Key types:
//   - Operand: one input to an expression (literal, field reference, or nested expression)
//   - MergeObjects: the $mergeObjects expression
//   - ObjectToArray, GetField, SetField: the remaining object-expression operators
//   - ObjectOperatorFactory: entry point binding a starting value to the operator constructors
//   - RenderContext: field-reference resolution supplied at render time
//
// Common usage pattern:
//
//	factory, err := expressions.ValueOf("delivery")
//	if err != nil {
//		// handle error
//	}
//
//	merged, err := factory.MergeWithValuesOf("status", "tracking")
//	if err != nil {
//		// handle error
//	}
//
//	doc, err := merged.Render(expressions.NewDirectContext())
//	// doc: {"$mergeObjects": ["$delivery", "$status", "$tracking"]}
package expressions
