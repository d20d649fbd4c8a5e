// Package tools interprets tool calls returned by the chat model.
//
// The registry advertises each handler's function declaration to the model
// and, once a reply arrives, applies recognised calls to the state store.
// Unknown tool names pass through untouched so the caller still sees them
// in the raw tool-call list. There is no idempotency: a repeated call
// produces a repeated effect.
package tools
