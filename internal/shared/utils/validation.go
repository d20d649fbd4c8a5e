package utils

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// Body and field size limits
const (
	MaxBodySize      = 2 * 1024 * 1024 // 2MB - relay JSON body limit
	MaxCommandLength = 4096
	MaxQueryLength   = 2048
	MaxSpeechLength  = 8192
	MaxMessageCount  = 512
)

// ValidateString validates a string field with length and content checks
func ValidateString(value, fieldName string, minLen, maxLen int, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if value == "" && !required {
		return nil
	}

	length := utf8.RuneCountInString(value)
	if length < minLen {
		return fmt.Errorf("%s must be at least %d characters", fieldName, minLen)
	}
	if length > maxLen {
		return fmt.Errorf("%s must not exceed %d characters", fieldName, maxLen)
	}

	if strings.Contains(value, "\x00") {
		return fmt.Errorf("%s contains invalid characters", fieldName)
	}

	return nil
}

// ValidateCommand validates a terminal command line
func ValidateCommand(command string) error {
	return ValidateString(command, "command", 1, MaxCommandLength, true)
}

// ValidateQuery validates a maps query
func ValidateQuery(query string) error {
	return ValidateString(query, "query", 1, MaxQueryLength, true)
}

// ValidateSpeech validates text sent to speech synthesis
func ValidateSpeech(text string) error {
	return ValidateString(text, "text", 1, MaxSpeechLength, true)
}

// ValidateMessageCount bounds the chat history forwarded to the model
func ValidateMessageCount(n int) error {
	if n == 0 {
		return fmt.Errorf("messages array required")
	}
	if n > MaxMessageCount {
		return fmt.Errorf("too many messages (maximum %d)", MaxMessageCount)
	}
	return nil
}

// ValidateCoordinates checks an optional lat/lng pair.
// Both must be present together and within range.
func ValidateCoordinates(lat, lng *float64) error {
	if lat == nil && lng == nil {
		return nil
	}
	if lat == nil || lng == nil {
		return fmt.Errorf("lat and lng must be provided together")
	}
	if math.IsNaN(*lat) || *lat < -90 || *lat > 90 {
		return fmt.Errorf("lat must be between -90 and 90")
	}
	if math.IsNaN(*lng) || *lng < -180 || *lng > 180 {
		return fmt.Errorf("lng must be between -180 and 180")
	}
	return nil
}
