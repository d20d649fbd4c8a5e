// Package id provides prefixed ULID generation for relay records.
//
// IDs are lexicographically sortable by creation time, so a newer email
// always compares greater than an older one. The prefix names the record
// kind and keeps logs readable (email_*, file_*, req_*).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// EmailID identifies an inbox email
type EmailID string

// FileID identifies a vault file
type FileID string

// ContactID identifies an address-book contact
type ContactID string

// RequestID identifies an API request or trace span
type RequestID string

const (
	EmailPrefix   = "email"
	FilePrefix    = "file"
	ContactPrefix = "contact"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
	now       func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by monotonic crypto entropy
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source.
// Tests pass a deterministic reader.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
		now:     time.Now,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.Generate().String())
}

// NewEmailID generates a new email ID
func NewEmailID() EmailID {
	return EmailID(Default().GenerateWithPrefix(EmailPrefix))
}

// NewFileID generates a new file ID
func NewFileID() FileID {
	return FileID(Default().GenerateWithPrefix(FilePrefix))
}

// NewContactID generates a new contact ID
func NewContactID() ContactID {
	return ContactID(Default().GenerateWithPrefix(ContactPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

func (id EmailID) String() string   { return string(id) }
func (id FileID) String() string    { return string(id) }
func (id ContactID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

// Split separates a prefixed ID into its prefix and ULID parts.
// IDs without a prefix return an empty prefix.
func Split(s string) (prefix, raw string) {
	if i := strings.LastIndexByte(s, '_'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return "", s
}

// IsValid checks if an ID string, prefixed or not, carries a valid ULID
func IsValid(s string) bool {
	_, raw := Split(s)
	_, err := ulid.ParseStrict(raw)
	return err == nil
}

// Timestamp extracts the creation time from an ID
func Timestamp(s string) (time.Time, error) {
	_, raw := Split(s)
	parsed, err := ulid.ParseStrict(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ulid.Time(parsed.Time()), nil
}
