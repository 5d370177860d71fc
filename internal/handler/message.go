package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusgate/student-portal/internal/model"
	"github.com/campusgate/student-portal/internal/repository"
)

// MessageHandler owns the inbox listing and message sending endpoints.
type MessageHandler struct {
	Messages *repository.MessageRepo
}

func NewMessageHandler(messages *repository.MessageRepo) *MessageHandler {
	return &MessageHandler{Messages: messages}
}

type sendMessageRequest struct {
	RecipientID uint64  `json:"recipientId"`
	Subject     *string `json:"subject"`
	Message     string  `json:"message"`
}

// List returns the caller's unread messages, the fifty most recent sent or
// received messages, and the unread count.
func (h *MessageHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	unread, err := h.Messages.Unread(ctx, userID)
	if err != nil {
		c.Logger().Errorf("messages: unread: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load messages"})
	}
	all, err := h.Messages.All(ctx, userID, 50)
	if err != nil {
		c.Logger().Errorf("messages: all: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to load messages"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"unreadMessages": unread,
		"allMessages":    all,
		"unreadCount":    len(unread),
	})
}

// Send records a direct message to another user.
func (h *MessageHandler) Send(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Not authenticated"})
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.RecipientID == 0 || strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Recipient and message are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Messages.Send(ctx, model.Message{
		SenderID:    userID,
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		MessageText: req.Message,
	}); err != nil {
		c.Logger().Errorf("messages: send: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to send message"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}
