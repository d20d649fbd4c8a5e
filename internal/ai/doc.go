// Package ai wraps the generative model used by the relay.
//
// Provider is the narrow surface handlers depend on: chat with tool
// declarations, simulated terminal output, map-grounded answers and speech
// synthesis. Gemini implements it on google.golang.org/genai, guarding each
// call with a circuit breaker and recording latency and failures.
//
// Response text and function calls are read from the first candidate only.
package ai
