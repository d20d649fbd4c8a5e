package ai

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"google.golang.org/genai"

	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// toContents converts chat history into model contents.
// Messages with neither text nor attachments are skipped.
func toContents(messages []types.Message) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(messages))
	for i, m := range messages {
		parts := make([]*genai.Part, 0, 1+len(m.Attachments))
		if strings.TrimSpace(m.Content) != "" {
			parts = append(parts, genai.NewPartFromText(m.Content))
		}
		for j, a := range m.Attachments {
			part, err := attachmentPart(a)
			if err != nil {
				return nil, fmt.Errorf("message %d attachment %d: %w", i, j, err)
			}
			parts = append(parts, part)
		}
		if len(parts) == 0 {
			continue
		}
		contents = append(contents, genai.NewContentFromParts(parts, roleFor(m.Role)))
	}
	return contents, nil
}

func roleFor(r types.Role) genai.Role {
	if r == types.RoleAssistant {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func attachmentPart(a types.Attachment) (*genai.Part, error) {
	data, err := decodeBase64(a.Base64)
	if err != nil {
		return nil, err
	}

	mime := a.MimeType
	switch {
	case a.IsPDF:
		mime = "application/pdf"
	case mime == "":
		mime = mimetype.Detect(data).String()
	}
	if base, _, ok := strings.Cut(mime, ";"); ok {
		mime = strings.TrimSpace(base)
	}

	// The Gemini API backend rejects InlineData.DisplayName, so the name stays local
	return genai.NewPartFromBytes(data, mime), nil
}

// decodeBase64 accepts raw base64 or a data URL
func decodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if _, payload, ok := strings.Cut(s, ","); ok {
			s = payload
		}
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(s); err != nil {
			return nil, ErrInvalidAttachment
		}
	}
	return data, nil
}

// responseText concatenates the non-thought text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	c := firstContent(resp)
	if c == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range c.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func responseToolCalls(resp *genai.GenerateContentResponse) []types.ToolCall {
	c := firstContent(resp)
	if c == nil {
		return []types.ToolCall{}
	}
	calls := []types.ToolCall{}
	for _, p := range c.Parts {
		if p == nil || p.FunctionCall == nil {
			continue
		}
		args := p.FunctionCall.Args
		if args == nil {
			args = map[string]any{}
		}
		calls = append(calls, types.ToolCall{ID: p.FunctionCall.ID, Name: p.FunctionCall.Name, Args: args})
	}
	return calls
}

func responseAudio(resp *genai.GenerateContentResponse) []byte {
	c := firstContent(resp)
	if c == nil {
		return nil
	}
	for _, p := range c.Parts {
		if p != nil && p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData.Data
		}
	}
	return nil
}

func responseSources(resp *genai.GenerateContentResponse) []types.GroundingSource {
	sources := []types.GroundingSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		switch {
		case chunk == nil:
		case chunk.Maps != nil:
			sources = append(sources, types.GroundingSource{
				Title:   chunk.Maps.Title,
				URI:     chunk.Maps.URI,
				PlaceID: chunk.Maps.PlaceID,
			})
		case chunk.Web != nil:
			sources = append(sources, types.GroundingSource{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		}
	}
	return sources
}

func firstContent(resp *genai.GenerateContentResponse) *genai.Content {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	return resp.Candidates[0].Content
}
