package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/AuraOS/internal/shared/id"
)

const sampleSeed = `
logs = ["[BOOT] custom"]

[user]
name = "Operator"
robot_name = "Unit-9"
credits = 10.5
health = 80

[[emails]]
id = "welcome"
sender = "Ops"
recipient = "Operator"
subject = "Hi"
body = "Ready."
timestamp = 2024-05-01T10:00:00Z

[[contacts]]
id = "c9"
name = "Relay"
phone = "+1-555-0100"
status = "offline"
is_blocked = true
`

func TestParseSeedOverridesSections(t *testing.T) {
	seed, err := ParseSeed([]byte(sampleSeed), fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "Operator", seed.User.Name)
	assert.Equal(t, "Unit-9", seed.User.RobotName)
	assert.Equal(t, 10.5, seed.User.Credits)
	assert.Equal(t, 80, seed.User.Health)

	require.Len(t, seed.Emails, 1)
	assert.Equal(t, "welcome", seed.Emails[0].ID)
	assert.Equal(t, 2024, seed.Emails[0].Timestamp.Year())

	require.Len(t, seed.Contacts, 1)
	assert.True(t, seed.Contacts[0].IsBlocked)
	assert.Equal(t, []string{"[BOOT] custom"}, seed.Logs)

	// files section absent: defaults kept
	require.Len(t, seed.Files, 1)
	assert.Equal(t, "core_manifest.pdf", seed.Files[0].Name)
}

func TestParseSeedFillsZeroTimestamps(t *testing.T) {
	seed, err := ParseSeed([]byte("[[files]]\nid = \"f2\"\nname = \"a.txt\"\n"), fixedNow)
	require.NoError(t, err)

	require.Len(t, seed.Files, 1)
	assert.Equal(t, fixedNow, seed.Files[0].Timestamp)
}

func TestParseSeedMintsMissingIDs(t *testing.T) {
	data := "[[emails]]\nsubject = \"hi\"\n[[files]]\nname = \"a.txt\"\n[[contacts]]\nname = \"Relay\"\n"
	seed, err := ParseSeed([]byte(data), fixedNow)
	require.NoError(t, err)

	for prefix, got := range map[string]string{
		id.EmailPrefix:   seed.Emails[0].ID,
		id.FilePrefix:    seed.Files[0].ID,
		id.ContactPrefix: seed.Contacts[0].ID,
	} {
		p, _ := id.Split(got)
		assert.Equal(t, prefix, p)
		assert.True(t, id.IsValid(got), got)
	}
}

func TestParseSeedInvalid(t *testing.T) {
	_, err := ParseSeed([]byte("[user\nname="), fixedNow)
	assert.Error(t, err)
}

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed("", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed(fixedNow), seed)

	path := filepath.Join(t.TempDir(), "seed.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o644))

	seed, err = LoadSeed(path, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Operator", seed.User.Name)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.toml"), fixedNow)
	assert.Error(t, err)
}
