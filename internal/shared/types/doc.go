// Package types provides shared data structures for Aura OS.
//
// The relay and the shell exchange these records as JSON, so every field
// carries the camelCase tag used on the wire.
//
// Core Types:
//   - SystemState: the relay's shared state (user, emails, files, contacts, logs)
//   - UserProfile: the shell's logged-in profile
//   - Email, FileAsset, Contact, Message, Attachment, Track: value records
//   - AppID: closed enum of panel identifiers
//
// Request Types:
//   - ChatRequest, TerminalRequest, MapsRequest, SpeakRequest: relay input
//   - ChatResponse, TerminalResponse, MapsResponse, SpeakResponse: relay output
//
// Example Usage:
//
//	email := types.Email{
//	    ID:        string(id.NewEmailID()),
//	    Sender:    "Aura_Core",
//	    Recipient: "Admin",
//	    Subject:   "Status",
//	}
package types
