// Demo for building an aggregation pipeline that combines per-customer
// delivery documents with $mergeObjects and prints the assembled stages.
package main

import (
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/docpipe/aggregation-expressions-go/expressions"
	"github.com/docpipe/aggregation-expressions-go/pipeline"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	factory, err := expressions.ValueOf("delivery")
	if err != nil {
		return err
	}

	// one operand: renders as {"$mergeObjects": "$delivery"}
	combinedPerCustomer := factory.Merge()

	defaults := bson.D{{Key: "status", Value: "unknown"}, {Key: "tracking", Value: nil}}

	withDefaults, err := expressions.Merge(defaults)
	if err != nil {
		return err
	}

	withDefaults, err = withDefaults.MergeWithValuesOf("combined")
	if err != nil {
		return err
	}

	customerID, err := expressions.FieldOperand("customerId")
	if err != nil {
		return err
	}

	builder, err := pipeline.NewBuilder(
		pipeline.WithRenderContext(
			expressions.NewStrictContext("delivery", "customerId", "combined"),
		),
	)
	if err != nil {
		return err
	}

	stages, err := builder.
		Group(customerID, pipeline.AccumulatorField{Name: "combined", Expression: combinedPerCustomer}).
		ReplaceRoot(withDefaults).
		Build()
	if err != nil {
		return err
	}

	rendered, err := pipeline.DebugJSON(stages)
	if err != nil {
		return err
	}

	fmt.Println(rendered)

	return nil
}
