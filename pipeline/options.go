package pipeline

import (
	"github.com/docpipe/aggregation-expressions-go/expressions"
)

// Option defines a functional option for configuring a Builder.
type Option func(*Builder) error

// WithRenderContext sets the RenderContext used to render every expression
// embedded in the assembled stages. The default is a DirectContext.
func WithRenderContext(ctx expressions.RenderContext) Option {
	return func(b *Builder) error {
		if ctx == nil {
			return expressions.ErrNilRenderContext
		}

		b.renderContext = ctx

		return nil
	}
}
