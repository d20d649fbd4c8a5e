package types

// AppID identifies a panel in the shell
type AppID string

const (
	AppHome       AppID = "home"
	AppChat       AppID = "chat"
	AppTerminal   AppID = "terminal"
	AppMaps       AppID = "maps"
	AppFiles      AppID = "files"
	AppSecurity   AppID = "security"
	AppNetwork    AppID = "network"
	AppProfile    AppID = "profile"
	AppContent    AppID = "content"
	AppInbox      AppID = "inbox"
	AppVideo      AppID = "video"
	AppBooks      AppID = "books"
	AppController AppID = "controller"
	AppCamera     AppID = "camera"
	AppExtensions AppID = "extensions"
	AppStorage    AppID = "storage"
	AppDJMusic    AppID = "djmusic"
)

var allApps = []AppID{
	AppHome, AppChat, AppTerminal, AppMaps, AppFiles, AppSecurity,
	AppNetwork, AppProfile, AppContent, AppInbox, AppVideo, AppBooks,
	AppController, AppCamera, AppExtensions, AppStorage, AppDJMusic,
}

// AllAppIDs returns every known panel identifier in launcher order
func AllAppIDs() []AppID {
	out := make([]AppID, len(allApps))
	copy(out, allApps)
	return out
}

// Valid reports whether the identifier names a known panel
func (a AppID) Valid() bool {
	for _, id := range allApps {
		if id == a {
			return true
		}
	}
	return false
}

func (a AppID) String() string { return string(a) }

// Default profile values applied at login
const (
	DefaultUserName  = "Admin"
	DefaultRobotName = "Aura-X"
	DefaultCredits   = 12450.75
	DefaultHealth    = 100
)

// UserProfile is the shell's logged-in identity.
// Credits is a pointer so a persisted zero balance survives a reload.
type UserProfile struct {
	Name          string   `json:"name"`
	RobotName     string   `json:"robotName"`
	IsLoggedIn    bool     `json:"isLoggedIn"`
	BioRegistered bool     `json:"bioRegistered"`
	Credits       *float64 `json:"credits,omitempty"`
	InstalledApps []string `json:"installedApps"`
}

// Balance returns the credit balance, zero when unset
func (u *UserProfile) Balance() float64 {
	if u == nil || u.Credits == nil {
		return 0
	}
	return *u.Credits
}

// Apps returns the installed list; nil for a nil profile
func (u *UserProfile) Apps() []string {
	if u == nil {
		return nil
	}
	return u.InstalledApps
}

// HasApp reports whether the app is in the installed list
func (u *UserProfile) HasApp(name string) bool {
	if u == nil {
		return false
	}
	for _, a := range u.InstalledApps {
		if a == name {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the profile
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	if u.Credits != nil {
		credits := *u.Credits
		c.Credits = &credits
	}
	if u.InstalledApps != nil {
		c.InstalledApps = make([]string, len(u.InstalledApps))
		copy(c.InstalledApps, u.InstalledApps)
	}
	return &c
}
