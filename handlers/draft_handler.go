package handlers

import (
	"net/http"

	"zpdraft-backend/config"
	"zpdraft-backend/models"
	"zpdraft-backend/repository"
	"zpdraft-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DraftHandler handles HTTP requests for draft generation
type DraftHandler struct {
	draftService *service.DraftService
	draftRepo    *repository.DraftRepository
	cfg          *config.Config
}

// NewDraftHandler creates a new draft handler. draftRepo may be nil when no
// database is configured; the archive endpoints are then not registered.
func NewDraftHandler(draftService *service.DraftService, draftRepo *repository.DraftRepository, cfg *config.Config) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		draftRepo:    draftRepo,
		cfg:          cfg,
	}
}

// Probe handles GET on the generation endpoints: a lightweight liveness
// answer for the caller-side UI
func (h *DraftHandler) Probe(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GenerateDraft handles POST /api/drafts/generate and returns the structured
// DraftResult shape
func (h *DraftHandler) GenerateDraft(c *gin.Context) {
	result, ok := h.runPipeline(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Result)
}

// Generate handles POST /api/generate, the legacy single-string contract:
// {title, content}
func (h *DraftHandler) Generate(c *gin.Context) {
	result, ok := h.runPipeline(c)
	if !ok {
		return
	}

	content := ""
	switch {
	case result.Result.OrderText != nil:
		content = *result.Result.OrderText
	case result.Result.DecisionText != nil:
		content = *result.Result.DecisionText
	case result.Result.Raw != nil:
		content = *result.Result.Raw
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   models.Title(result.Record.Language, result.Record.Mode),
		"content": content,
	})
}

// runPipeline shares the credential check, body parsing and pipeline call
// between the two POST endpoints. The credential check comes first so a
// request that cannot succeed never spends a model call.
func (h *DraftHandler) runPipeline(c *gin.Context) (*service.GenerateDraftResult, bool) {
	if h.cfg.CredentialMissing() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Server configuration error",
			"details": "GEMINI_API_KEY is not set",
		})
		return nil, false
	}

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		// An empty or absent body is a valid request; every field defaults.
		payload = map[string]interface{}{}
	}

	result, err := h.draftService.GenerateDraft(c.Request.Context(), payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate draft",
			"details": err.Error(),
		})
		return nil, false
	}

	return result, true
}

// GetDraft handles GET /api/drafts/:id
func (h *DraftHandler) GetDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid draft ID format",
			},
		})
		return
	}

	draft, err := h.draftRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Draft not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    draft,
	})
}

// DeleteDraft handles DELETE /api/drafts/:id
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid draft ID format",
			},
		})
		return
	}

	if err := h.draftRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ListDrafts handles GET /api/drafts
func (h *DraftHandler) ListDrafts(c *gin.Context) {
	drafts, err := h.draftRepo.ListRecent(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RETRIEVAL_FAILED",
				"message": err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    drafts,
	})
}
