// Package ws serves the live SystemState stream at /api/system/stream.
//
// A connection receives a "snapshot" frame on connect and a "state" frame
// after every store mutation. Clients may send {"type":"ping"} and get a
// "pong" back. Frames are JSON encoded with sonic.
package ws
