package mediator

import "context"

// Pipeline is a fixed, ordered list of middlewares.
//
// The first middleware is outermost: it runs first on the way in and last on
// the way out. The handler passed to Then is innermost.
type Pipeline struct {
	middlewares []Middleware
}

// NewPipeline creates a pipeline; the slice is copied so later changes by the caller have no effect
func NewPipeline(middlewares ...Middleware) *Pipeline {
	return &Pipeline{
		middlewares: append([]Middleware(nil), middlewares...),
	}
}

// Len returns the number of middlewares in the pipeline
func (p *Pipeline) Len() int {
	return len(p.middlewares)
}

// Then composes the pipeline around handler into a single continuation.
// The result holds no per-call state and may be reused concurrently.
func (p *Pipeline) Then(handler RequestHandler) HandlerFunc {
	next := HandlerFunc(handler.Handle)

	// Build the chain in reverse order
	for i := len(p.middlewares) - 1; i >= 0; i-- {
		middleware := p.middlewares[i]
		inner := next
		next = func(ctx context.Context, request Request) (Response, error) {
			return middleware(ctx, request, inner)
		}
	}

	return next
}
