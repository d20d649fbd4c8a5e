package types

import "time"

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleFriend    Role = "friend"
)

// Attachment is an inline payload carried by a message or email
type Attachment struct {
	MimeType string `json:"mimeType"`
	Base64   string `json:"base64"`
	Name     string `json:"name,omitempty"`
	IsPDF    bool   `json:"isPDF,omitempty"`
}

// Message is a single chat turn
type Message struct {
	ID            string            `json:"id"`
	Role          Role              `json:"role"`
	Content       string            `json:"content"`
	Timestamp     time.Time         `json:"timestamp"`
	GroundingURLs []GroundingSource `json:"groundingUrls,omitempty"`
	Attachments   []Attachment      `json:"attachments,omitempty"`
	Reactions     []string          `json:"reactions,omitempty"`
	IsStoryline   bool              `json:"isStoryline,omitempty"`
}

// Email is a message in the relay inbox
type Email struct {
	ID          string       `json:"id"`
	Sender      string       `json:"sender"`
	Recipient   string       `json:"recipient"`
	Subject     string       `json:"subject"`
	Body        string       `json:"body"`
	Timestamp   time.Time    `json:"timestamp"`
	Attachments []Attachment `json:"attachments,omitempty"`
	IsRead      bool         `json:"isRead"`
}

// FileAsset is a vault entry
type FileAsset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Category  string    `json:"category,omitempty"`
	URL       string    `json:"url,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Size      string    `json:"size,omitempty"`
	IsPrivate bool      `json:"isPrivate,omitempty"`
}

// Contact is an address-book entry
type Contact struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Avatar    string `json:"avatar,omitempty"`
	Status    string `json:"status"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
}

// Track is an audio asset with DJ analysis data
type Track struct {
	FileAsset
	BPM         float64   `json:"bpm,omitempty"`
	Key         string    `json:"key,omitempty"`
	Cues        []float64 `json:"cues,omitempty"`
	BeatgridSet bool      `json:"beatgridSet,omitempty"`
	PhraseSet   bool      `json:"phraseSet,omitempty"`
	Format      string    `json:"format,omitempty"`
}

// RelayUser is the user block inside SystemState
type RelayUser struct {
	Name      string  `json:"name" toml:"name"`
	RobotName string  `json:"robotName" toml:"robot_name"`
	Credits   float64 `json:"credits" toml:"credits"`
	Health    int     `json:"health" toml:"health"`
}

// SystemState is the relay's single shared state object
type SystemState struct {
	User     RelayUser   `json:"user"`
	Emails   []Email     `json:"emails"`
	Files    []FileAsset `json:"files"`
	Contacts []Contact   `json:"contacts"`
	Logs     []string    `json:"logs"`
}

// Clone returns a deep copy of the state
func (s SystemState) Clone() SystemState {
	out := SystemState{
		User:     s.User,
		Emails:   make([]Email, len(s.Emails)),
		Files:    make([]FileAsset, len(s.Files)),
		Contacts: make([]Contact, len(s.Contacts)),
		Logs:     make([]string, len(s.Logs)),
	}
	for i, e := range s.Emails {
		if e.Attachments != nil {
			e.Attachments = append([]Attachment(nil), e.Attachments...)
		}
		out.Emails[i] = e
	}
	copy(out.Files, s.Files)
	copy(out.Contacts, s.Contacts)
	copy(out.Logs, s.Logs)
	return out
}

// Stats holds collection sizes of a SystemState
type Stats struct {
	Emails   int `json:"emails"`
	Files    int `json:"files"`
	Contacts int `json:"contacts"`
	Logs     int `json:"logs"`
}

// Stats returns the collection sizes
func (s SystemState) Stats() Stats {
	return Stats{
		Emails:   len(s.Emails),
		Files:    len(s.Files),
		Contacts: len(s.Contacts),
		Logs:     len(s.Logs),
	}
}
