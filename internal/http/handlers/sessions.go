package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/dc25/photoview/internal/carousel"
	"github.com/dc25/photoview/internal/flickr"
	"github.com/dc25/photoview/internal/hub"
	"github.com/dc25/photoview/internal/viewer"
)

type SessionHandler struct {
	logger   *slog.Logger
	manager  *viewer.Manager
	hub      *hub.Hub
	upgrader websocket.Upgrader
}

func NewSessionHandler(logger *slog.Logger, manager *viewer.Manager, h *hub.Hub) *SessionHandler {
	return &SessionHandler{
		logger:  logger,
		manager: manager,
		hub:     h,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type createSessionRequest struct {
	Username string `json:"username"`
	Album    string `json:"album"`
}

// Create opens a viewer session for a user's public photos or one of their
// albums. The session is created even when the collection fetch fails, so
// the response status mirrors the session's state.
func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Album = strings.TrimSpace(req.Album)
	if req.Username == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "username is required"})
		return
	}

	session := h.manager.Open(c.Request.Context(), req.Username, req.Album)

	if err := session.Err(); err != nil {
		var notFound *flickr.AlbumNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"sessionId": session.ID,
				"error":     "album not found",
				"album":     notFound.Album,
			})
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{
			"sessionId": session.ID,
			"error":     "failed to load photos",
		})
		return
	}

	view, err := session.Snapshot()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load photos"})
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Show returns the session's current view.
func (h *SessionHandler) Show(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	view, err := session.Snapshot()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load photos"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Next rotates the session forward one photo.
func (h *SessionHandler) Next(c *gin.Context) {
	h.rotate(c, carousel.Forward)
}

// Previous rotates the session backward one photo.
func (h *SessionHandler) Previous(c *gin.Context) {
	h.rotate(c, carousel.Backward)
}

func (h *SessionHandler) rotate(c *gin.Context, dir carousel.Direction) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	view, err := session.Rotate(dir)
	if err != nil {
		// Navigation is disabled once a load has failed.
		c.JSON(http.StatusConflict, gin.H{"error": "session failed to load"})
		return
	}

	c.JSON(http.StatusOK, view)
}

// Delete forgets a session and tells attached displays it is gone.
func (h *SessionHandler) Delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || !h.manager.Close(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	h.hub.SessionClosed(id)
	c.Status(http.StatusNoContent)
}

// Attach upgrades the connection to a WebSocket and streams session events
// to it.
func (h *SessionHandler) Attach(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "session", session.ID, "error", err)
		return
	}

	h.hub.Attach(conn, session.ID)
}

func (h *SessionHandler) lookup(c *gin.Context) (*viewer.Session, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}

	session, ok := h.manager.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}

	return session, true
}
