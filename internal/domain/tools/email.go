package tools

import (
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/GriffinCanCode/AuraOS/internal/domain/state"
	"github.com/GriffinCanCode/AuraOS/internal/shared/id"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// CreateEmailName is the tool name the model uses to send mail
const CreateEmailName = "create_email"

// EmailSender is the sender of every model-composed email
const EmailSender = "Aura_Core"

// CreateEmail turns a create_email call into an inbox email and a log line
type CreateEmail struct {
	now   func() time.Time
	newID func() string
}

// NewCreateEmail creates the handler
func NewCreateEmail() *CreateEmail {
	return &CreateEmail{
		now:   time.Now,
		newID: func() string { return id.NewEmailID().String() },
	}
}

// Name implements Handler
func (h *CreateEmail) Name() string { return CreateEmailName }

// Declaration implements Handler
func (h *CreateEmail) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        CreateEmailName,
		Description: "Compose and send an email from the Aura system inbox.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"recipient": {Type: genai.TypeString, Description: "Who the email is addressed to"},
				"subject":   {Type: genai.TypeString, Description: "Subject line"},
				"body":      {Type: genai.TypeString, Description: "Plain-text message body"},
			},
			Required: []string{"recipient", "subject", "body"},
		},
	}
}

// Apply implements Handler. Argument shape is not validated beyond
// presence; absent arguments become empty strings.
func (h *CreateEmail) Apply(store *state.Store, call types.ToolCall) error {
	if call.Name != CreateEmailName {
		return fmt.Errorf("create_email handler got %q", call.Name)
	}

	email := types.Email{
		ID:        h.newID(),
		Sender:    EmailSender,
		Recipient: argString(call.Args, "recipient"),
		Subject:   argString(call.Args, "subject"),
		Body:      argString(call.Args, "body"),
		Timestamp: h.now(),
		IsRead:    false,
	}

	store.ApplyEmail(email, EmailLogLine(email.Recipient))
	return nil
}

// EmailLogLine is the log entry written for a dispatched email
func EmailLogLine(recipient string) string {
	if recipient == "" {
		recipient = "unknown"
	}
	return "[AI] Email dispatched to " + recipient
}

func argString(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
