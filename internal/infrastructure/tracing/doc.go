/*
Package tracing provides lightweight request tracing for the relay.

# Overview

Each relay request gets a span; provider calls made while serving it are
child spans. Completed spans are logged through zap by a background
collector. The shell's relay client forwards its trace ID so one ID covers
the panel action, the relay request and the provider call.

# Usage

	tracer := tracing.New("relay", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "ai.chat")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
	span.SetTag("model", "gemini-2.5-flash")

# Trace Format

Traces use HTTP headers for propagation:
- X-Trace-ID: identifier for the whole request flow
- X-Span-ID: identifier for the current operation
*/
package tracing
