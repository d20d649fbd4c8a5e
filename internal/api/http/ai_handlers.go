package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/AuraOS/internal/ai"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
	"github.com/GriffinCanCode/AuraOS/internal/shared/utils"
)

// Chat forwards the conversation to the model and applies tool calls.
// State changes only after the model reply arrives, in one atomic step per call.
func (h *Handlers) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, "messages array required")
		return
	}
	if err := utils.ValidateMessageCount(len(req.Messages)); err != nil {
		h.badRequest(c, nil, err.Error())
		return
	}

	result, err := h.provider.Chat(c.Request.Context(), ai.ChatInput{
		Messages:    req.Messages,
		Instruction: req.Instruction,
		Tools:       h.tools.Declarations(),
	})
	if err != nil {
		h.providerFailure(c, ai.OpChat, err, MsgChatFailure)
		return
	}

	for _, r := range h.tools.ApplyAll(h.store, result.ToolCalls) {
		h.metrics.RecordToolCall(r.Name, r.Applied)
		if r.Err != nil {
			h.logger.Warn("Tool call failed", zap.String("tool", r.Name), zap.Error(r.Err))
		}
	}

	calls := result.ToolCalls
	if calls == nil {
		calls = []types.ToolCall{}
	}
	c.JSON(http.StatusOK, types.ChatResponse{Text: result.Text, ToolCalls: calls})
}

// Terminal simulates a shell command and records it in the system log
func (h *Handlers) Terminal(c *gin.Context) {
	var req types.TerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, validationMessage(utils.ValidateCommand(req.Command)))
		return
	}
	if err := utils.ValidateCommand(req.Command); err != nil {
		h.badRequest(c, nil, err.Error())
		return
	}

	output, err := h.provider.Terminal(c.Request.Context(), req.Command)
	if err != nil {
		h.providerFailure(c, ai.OpTerminal, err, MsgTerminalFailure)
		return
	}

	h.store.PrependLog("[CLI] " + req.Command)
	c.JSON(http.StatusOK, types.TerminalResponse{Output: output})
}

// Maps answers a location query with grounding sources
func (h *Handlers) Maps(c *gin.Context) {
	var req types.MapsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, validationMessage(utils.ValidateQuery(req.Query)))
		return
	}
	if err := utils.ValidateQuery(req.Query); err != nil {
		h.badRequest(c, nil, err.Error())
		return
	}
	if err := utils.ValidateCoordinates(req.Lat, req.Lng); err != nil {
		h.badRequest(c, nil, err.Error())
		return
	}

	result, err := h.provider.Maps(c.Request.Context(), req.Query, req.Lat, req.Lng)
	if err != nil {
		h.providerFailure(c, ai.OpMaps, err, MsgMapsFailure)
		return
	}

	sources := result.Sources
	if sources == nil {
		sources = []types.GroundingSource{}
	}
	c.JSON(http.StatusOK, types.MapsResponse{Text: result.Text, Sources: sources})
}

// Speak synthesises speech and returns base64 audio
func (h *Handlers) Speak(c *gin.Context) {
	var req types.SpeakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err, validationMessage(utils.ValidateSpeech(req.Text)))
		return
	}
	if err := utils.ValidateSpeech(req.Text); err != nil {
		h.badRequest(c, nil, err.Error())
		return
	}

	audio, err := h.provider.Speak(c.Request.Context(), req.Text)
	if err != nil {
		h.providerFailure(c, ai.OpSpeak, err, MsgSpeakFailure)
		return
	}

	c.JSON(http.StatusOK, types.SpeakResponse{AudioData: audio})
}

func validationMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
