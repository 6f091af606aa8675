package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"writeassist/internal/domain"
	"writeassist/internal/session"
)

// Handler exposes a session over HTTP. Provider jobs started by actions run
// on background goroutines bound to the handler's context.
type Handler struct {
	ctx     context.Context
	session *session.Session
	jobs    sync.WaitGroup
}

func NewHandler(ctx context.Context, s *session.Session) *Handler {
	return &Handler{ctx: ctx, session: s}
}

// Register attaches the API routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/document", h.document)
	rg.GET("/spans", h.spans)
	rg.POST("/suggestions/:id/accept", h.accept)
	rg.POST("/suggestions/:id/dismiss", h.dismiss)
	rg.GET("/messages", h.messages)
	rg.POST("/messages", h.postMessage)
	rg.POST("/actions/:action", h.action)
}

// Wait blocks until every background job has completed.
func (h *Handler) Wait() { h.jobs.Wait() }

func (h *Handler) document(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": h.session.Document()})
}

func (h *Handler) spans(c *gin.Context) {
	spans, err := h.session.Spans()
	if err != nil {
		log.Printf("[error] render spans: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "spans": spans})
}

func suggestionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid suggestion id"})
		return 0, false
	}
	return id, true
}

func (h *Handler) accept(c *gin.Context) {
	id, ok := suggestionID(c)
	if !ok {
		return
	}
	err := h.session.Accept(id)
	var nf *domain.NotFoundError
	var re *domain.RangeError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.As(err, &re):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "document": h.session.Document()})
}

// dismiss is idempotent: unknown ids are not an error.
func (h *Handler) dismiss(c *gin.Context) {
	id, ok := suggestionID(c)
	if !ok {
		return
	}
	h.session.Dismiss(id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) messages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "messages": h.session.Messages()})
}

type messageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *Handler) postMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	user, bot, err := h.session.Say(req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "messages": []any{user, bot}})
}

type actionRequest struct {
	TargetWords int `json:"target_words"`
}

func (h *Handler) action(c *gin.Context) {
	var req actionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil || req.TargetWords < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}
	job, err := h.session.Action(c.Param("action"), req.TargetWords)
	if errors.Is(err, session.ErrUnknownAction) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	h.jobs.Add(1)
	go func() {
		defer h.jobs.Done()
		h.session.Complete(job.Run(h.ctx))
	}()
	c.JSON(http.StatusAccepted, gin.H{"ok": true, "request_id": job.RequestID, "message_id": job.MessageID})
}
