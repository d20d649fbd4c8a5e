package state

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/GriffinCanCode/AuraOS/internal/shared/id"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// InitLog is the first log line of a freshly seeded relay
const InitLog = "[INIT] Neural State Synchronized"

// DefaultSeed returns the state a relay boots with when no seed file is given
func DefaultSeed(now time.Time) types.SystemState {
	return types.SystemState{
		User: types.RelayUser{
			Name:      types.DefaultUserName,
			RobotName: types.DefaultRobotName,
			Credits:   types.DefaultCredits,
			Health:    types.DefaultHealth,
		},
		Emails: []types.Email{{
			ID:        "e1",
			Sender:    "Nexus_Systems",
			Recipient: types.DefaultUserName,
			Subject:   "System Upgrade v6.0",
			Body:      "Neural mesh connectivity is now live.",
			Timestamp: now,
			IsRead:    false,
		}},
		Files: []types.FileAsset{{
			ID:        "f1",
			Name:      "core_manifest.pdf",
			Type:      "pdf",
			Size:      "1.2MB",
			Timestamp: now,
		}},
		Contacts: []types.Contact{{
			ID:     "c1",
			Name:   "Nexus-7",
			Phone:  "+1-555-0199",
			Status: "online",
		}},
		Logs: []string{InitLog},
	}
}

// seedFile is the on-disk TOML layout of a seed
type seedFile struct {
	User     *types.RelayUser `toml:"user"`
	Emails   []seedEmail      `toml:"emails"`
	Files    []seedFileAsset  `toml:"files"`
	Contacts []seedContact    `toml:"contacts"`
	Logs     []string         `toml:"logs"`
}

type seedEmail struct {
	ID        string    `toml:"id"`
	Sender    string    `toml:"sender"`
	Recipient string    `toml:"recipient"`
	Subject   string    `toml:"subject"`
	Body      string    `toml:"body"`
	Timestamp time.Time `toml:"timestamp"`
	IsRead    bool      `toml:"is_read"`
}

type seedFileAsset struct {
	ID        string    `toml:"id"`
	Name      string    `toml:"name"`
	Type      string    `toml:"type"`
	Category  string    `toml:"category"`
	URL       string    `toml:"url"`
	Size      string    `toml:"size"`
	Timestamp time.Time `toml:"timestamp"`
	IsPrivate bool      `toml:"is_private"`
}

type seedContact struct {
	ID        string `toml:"id"`
	Name      string `toml:"name"`
	Phone     string `toml:"phone"`
	Avatar    string `toml:"avatar"`
	Status    string `toml:"status"`
	IsBlocked bool   `toml:"is_blocked"`
}

// LoadSeed reads a TOML seed file. An empty path yields DefaultSeed.
// Sections missing from the file keep their default contents; zero
// timestamps are replaced with now.
func LoadSeed(path string, now time.Time) (types.SystemState, error) {
	seed := DefaultSeed(now)
	if path == "" {
		return seed, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.SystemState{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data, now)
}

// ParseSeed decodes TOML seed data over DefaultSeed
func ParseSeed(data []byte, now time.Time) (types.SystemState, error) {
	seed := DefaultSeed(now)

	var f seedFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return types.SystemState{}, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if f.User != nil {
		seed.User = *f.User
	}
	if f.Emails != nil {
		seed.Emails = make([]types.Email, 0, len(f.Emails))
		for _, e := range f.Emails {
			seed.Emails = append(seed.Emails, types.Email{
				ID:        orID(e.ID, id.NewEmailID),
				Sender:    e.Sender,
				Recipient: e.Recipient,
				Subject:   e.Subject,
				Body:      e.Body,
				Timestamp: orNow(e.Timestamp, now),
				IsRead:    e.IsRead,
			})
		}
	}
	if f.Files != nil {
		seed.Files = make([]types.FileAsset, 0, len(f.Files))
		for _, fa := range f.Files {
			seed.Files = append(seed.Files, types.FileAsset{
				ID:        orID(fa.ID, id.NewFileID),
				Name:      fa.Name,
				Type:      fa.Type,
				Category:  fa.Category,
				URL:       fa.URL,
				Size:      fa.Size,
				Timestamp: orNow(fa.Timestamp, now),
				IsPrivate: fa.IsPrivate,
			})
		}
	}
	if f.Contacts != nil {
		seed.Contacts = make([]types.Contact, 0, len(f.Contacts))
		for _, c := range f.Contacts {
			contact := types.Contact(c)
			contact.ID = orID(c.ID, id.NewContactID)
			seed.Contacts = append(seed.Contacts, contact)
		}
	}
	if f.Logs != nil {
		seed.Logs = f.Logs
	}

	return seed, nil
}

// orID keeps a seeded id or mints a prefixed ULID for entries without one
func orID[T fmt.Stringer](seeded string, mint func() T) string {
	if seeded != "" {
		return seeded
	}
	return mint().String()
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t
}
