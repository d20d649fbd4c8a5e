// Package media probes local capture devices for the camera and security
// panels. It finds and opens device nodes; it does not decode frames.
package media
