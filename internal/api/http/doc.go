// Package http implements the relay's REST endpoints.
//
// Read endpoints serve the shared SystemState. Write endpoints forward to
// the model provider and only touch state after a successful reply:
// /api/terminal records a "[CLI] <command>" log line and /api/chat applies
// recognised tool calls. Provider failures become a 500 with a fixed
// message per endpoint; the underlying error is logged, never returned.
package http
