package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/nexvstar/site/internal/chatbot"
	"github.com/nexvstar/site/internal/common"
	"go.uber.org/zap"
)

const (
	wsReadLimit = 4096
	chatBusy    = "chat is busy, please try again shortly"
)

func (h *Handler) QuickReplies(c *gin.Context) {
	common.OK(c, gin.H{"quick_replies": chatbot.QuickReplies})
}

func (h *Handler) CreateConversation(c *gin.Context) {
	conv, err := h.Chat.Create()
	if errors.Is(err, chatbot.ErrRegistryFull) {
		h.Log.Warn("chat registry full", zap.Int("live", h.Chat.Len()))
		common.Fail(c, http.StatusServiceUnavailable, 50004, chatBusy)
		return
	}
	if err != nil {
		h.Log.Error("create conversation", zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to start conversation")
		return
	}
	common.OK(c, gin.H{
		"conversation_id": conv.ID(),
		"messages":        conv.Messages(),
		"quick_replies":   chatbot.QuickReplies,
	})
}

func (h *Handler) conversation(c *gin.Context) (*chatbot.Conversation, bool) {
	conv, err := h.Chat.Get(c.Param("id"))
	if err != nil {
		common.Fail(c, http.StatusNotFound, 40406, "conversation not found")
		return nil, false
	}
	return conv, true
}

func (h *Handler) ListChatMessages(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	common.OK(c, gin.H{
		"conversation_id": conv.ID(),
		"messages":        conv.Messages(),
		"typing":          conv.Typing(),
	})
}

type chatInput struct {
	Text string `json:"text"`
}

// submitFail maps a rejected submit to its envelope.
func submitFail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chatbot.ErrEmptyInput):
		common.Fail(c, http.StatusBadRequest, 10006, "message must not be empty")
	case errors.Is(err, chatbot.ErrAwaitingResponse):
		common.Fail(c, http.StatusConflict, 40901, "reply still pending")
	default:
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to send message")
	}
}

// SendChatMessage blocks through the typing delay and returns both messages.
func (h *Handler) SendChatMessage(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	var req chatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	user, reply, err := conv.Submit(req.Text)
	if err != nil {
		submitFail(c, err)
		return
	}
	common.OK(c, gin.H{
		"conversation_id": conv.ID(),
		"user":            user,
		"reply":           reply,
	})
}

// SendChatMessageStream emits message (user), typing, message (bot) and done
// as server-sent events. Rejected input is answered with a JSON envelope
// before any event is written.
func (h *Handler) SendChatMessageStream(c *gin.Context) {
	conv, ok := h.conversation(c)
	if !ok {
		return
	}
	var req chatInput
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	flusher, canFlush := c.Writer.(http.Flusher)
	writeJSON := func(event string, payload any) {
		b, err := json.Marshal(payload)
		if err != nil {
			fmt.Fprintf(c.Writer, "event: error\ndata: {\"message\":\"json marshal failed\"}\n\n")
		} else {
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", event, b)
		}
		if canFlush {
			flusher.Flush()
		}
	}

	started := false
	_, reply, err := conv.SubmitNotify(req.Text, func(user chatbot.Message) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")
		c.Header("X-Accel-Buffering", "no")
		c.Status(http.StatusOK)
		started = true

		writeJSON("message", gin.H{"type": "message", "message": user})
		writeJSON("typing", gin.H{"type": "typing", "typing": true})
	})
	if err != nil {
		if !started {
			submitFail(c, err)
		}
		return
	}
	writeJSON("message", gin.H{"type": "message", "message": reply})
	writeJSON("done", gin.H{"type": "done", "message_id": reply.ID})
}

type wsEvent struct {
	Type           string            `json:"type"`
	ConversationID string            `json:"conversation_id,omitempty"`
	Message        *chatbot.Message  `json:"message,omitempty"`
	Messages       []chatbot.Message `json:"messages,omitempty"`
	QuickReplies   []string          `json:"quick_replies,omitempty"`
	Typing         bool              `json:"typing,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// ChatWebsocket serves one conversation per connection. The conversation is
// dropped when the socket closes.
func (h *Handler) ChatWebsocket(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	conv, err := h.Chat.Create()
	if err != nil {
		msg := "failed to start conversation"
		if errors.Is(err, chatbot.ErrRegistryFull) {
			msg = chatBusy
		}
		h.Log.Error("create conversation", zap.Error(err))
		_ = ws.WriteJSON(wsEvent{Type: "error", Error: msg})
		return
	}
	defer h.Chat.Remove(conv.ID())

	ws.SetReadLimit(wsReadLimit)
	if err := ws.WriteJSON(wsEvent{
		Type:           "conversation",
		ConversationID: conv.ID(),
		Messages:       conv.Messages(),
		QuickReplies:   chatbot.QuickReplies,
	}); err != nil {
		return
	}

	for {
		var in chatInput
		if err := ws.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.Log.Debug("websocket closed", zap.String("conversation_id", conv.ID()), zap.Error(err))
			}
			return
		}

		var writeErr error
		_, reply, err := conv.SubmitNotify(in.Text, func(user chatbot.Message) {
			if writeErr = ws.WriteJSON(wsEvent{Type: "message", Message: &user}); writeErr != nil {
				return
			}
			writeErr = ws.WriteJSON(wsEvent{Type: "typing", Typing: true})
		})
		switch {
		case errors.Is(err, chatbot.ErrEmptyInput):
			writeErr = ws.WriteJSON(wsEvent{Type: "error", Error: "message must not be empty"})
		case errors.Is(err, chatbot.ErrAwaitingResponse):
			writeErr = ws.WriteJSON(wsEvent{Type: "error", Error: "reply still pending"})
		case err == nil && writeErr == nil:
			_ = ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			writeErr = ws.WriteJSON(wsEvent{Type: "message", Message: &reply})
			_ = ws.SetWriteDeadline(time.Time{})
		}
		if writeErr != nil {
			return
		}
	}
}
