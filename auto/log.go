package auto

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'mlsub.auto'.
func tracer() tracing.Trace {
	return tracing.Select("mlsub.auto")
}
