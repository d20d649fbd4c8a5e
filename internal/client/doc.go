// Package client is the shell's HTTP client for the Aura relay.
//
// The base URL is usually unknown at construction time and is set once
// discovery finds a live relay. Non-2xx responses become *APIError with
// the status, URL and raw body. Nothing is retried.
package client
