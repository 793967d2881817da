package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"zpdraft-backend/models"
	"zpdraft-backend/repository"
	"zpdraft-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles HTTP requests for source document operations
type DocumentHandler struct {
	documentRepo     *repository.DocumentRepository
	storage          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentRepo *repository.DocumentRepository, storage storage.Storage) *DocumentHandler {
	return &DocumentHandler{
		documentRepo: documentRepo,
		storage:      storage,
		maxFileSize:  10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"application/pdf":    true,
			"text/plain":         true,
			"application/msword": true, // .doc
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true, // .docx
		},
	}
}

// UploadDocument handles POST /api/documents/upload
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	kind := models.DocumentKind(c.PostForm("kind"))
	switch kind {
	case models.DocumentKindCase, models.DocumentKindGR, models.DocumentKindLegal:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_KIND",
				"message": "kind must be one of: case, gr, legal",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "File is required",
			},
		})
		return
	}

	if fileHeader.Size > h.maxFileSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_TOO_LARGE",
				"message": fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize),
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_OPEN_ERROR",
				"message": err.Error(),
			},
		})
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = inferMimeType(fileHeader.Filename)
	}

	if !h.allowedMimeTypes[mimeType] && !strings.HasPrefix(mimeType, "text/") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "File type not allowed. Allowed types: PDF, TXT, DOC, DOCX",
			},
		})
		return
	}

	documentID := uuid.New()

	storagePath, err := h.storage.Upload(c.Request.Context(), documentID, fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": fmt.Sprintf("Failed to upload file: %v", err),
			},
		})
		return
	}

	doc := &models.Document{
		ID:          documentID,
		Kind:        kind,
		Filename:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
		StoragePath: storagePath,
	}

	err = h.documentRepo.Create(c.Request.Context(), doc)
	if err != nil {
		// Try to clean up the uploaded file
		h.storage.Delete(c.Request.Context(), storagePath)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": fmt.Sprintf("Failed to save document record: %v", err),
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":         doc.ID,
			"kind":       doc.Kind,
			"filename":   doc.Filename,
			"mime_type":  doc.MimeType,
			"size":       doc.Size,
			"created_at": doc.CreatedAt,
		},
	})
}

// GetDocument handles GET /api/documents/:id
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid document ID format",
			},
		})
		return
	}

	doc, err := h.documentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), doc.StoragePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DOWNLOAD_FAILED",
				"message": fmt.Sprintf("Failed to download file: %v", err),
			},
		})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.DataFromReader(http.StatusOK, doc.Size, doc.MimeType, reader, nil)
}

// ListDocuments handles GET /api/documents?kind=case|gr|legal
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	kind := models.DocumentKind(c.Query("kind"))
	switch kind {
	case models.DocumentKindCase, models.DocumentKindGR, models.DocumentKindLegal:
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_KIND",
				"message": "kind must be one of: case, gr, legal",
			},
		})
		return
	}

	docs, err := h.documentRepo.ListByKind(c.Request.Context(), kind)
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
		"data":    docs,
	})
}

// DeleteDocument handles DELETE /api/documents/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid document ID format",
			},
		})
		return
	}

	doc, err := h.documentRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Document not found",
			},
		})
		return
	}

	if err := h.documentRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	// Storage cleanup is best effort; the record is already gone.
	h.storage.Delete(c.Request.Context(), doc.StoragePath)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(lower, ".txt"):
		return "text/plain"
	case strings.HasSuffix(lower, ".doc"):
		return "application/msword"
	case strings.HasSuffix(lower, ".docx"):
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
