package handler

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"threatguard/internal/models"
	"threatguard/internal/service"
)

const maxDescriptionLength = 1000

type EvidenceHandler interface {
	CreateEvidence(c *gin.Context)
	ListEvidence(c *gin.Context)
}

type evidenceHandler struct {
	evidenceService service.EvidenceService
	logger          *zap.Logger
}

func NewEvidenceHandler(evidenceService service.EvidenceService, logger *zap.Logger) EvidenceHandler {
	return &evidenceHandler{evidenceService: evidenceService, logger: logger}
}

type CreateEvidenceRequest struct {
	ThreatDetectionID *string `json:"threat_detection_id"`
	EvidenceType      string  `json:"evidence_type" binding:"required"`
	FileName          string  `json:"file_name" binding:"required"`
	FileURL           string  `json:"file_url" binding:"required"`
	FileSize          *int64  `json:"file_size"`
	MimeType          *string `json:"mime_type"`
	Description       string  `json:"description"`
}

// CreateEvidence handles POST /api/threats/evidence.
func (h *evidenceHandler) CreateEvidence(c *gin.Context) {
	var req CreateEvidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.AllowedEvidenceTypes[req.EvidenceType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evidence type must be one of: screenshot, document, audio, video, text"})
		return
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description must be less than 1000 characters"})
		return
	}

	userID := c.MustGet("user_id").(string)

	evidence, err := h.evidenceService.StoreEvidence(userID, service.StoreEvidenceInput{
		ThreatDetectionID: req.ThreatDetectionID,
		EvidenceType:      req.EvidenceType,
		FileName:          req.FileName,
		FileURL:           req.FileURL,
		FileSize:          req.FileSize,
		MimeType:          req.MimeType,
		Description:       req.Description,
	})
	if err != nil {
		h.logger.Error("Failed to store evidence", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store evidence"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Evidence stored successfully",
		"success":     true,
		"evidence_id": evidence.ID,
		"hash_value":  evidence.HashValue,
	})
}

// ListEvidence handles GET /api/threats/evidence.
// Query parameters: evidence_type, page, limit.
func (h *evidenceHandler) ListEvidence(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	evidenceType := c.Query("evidence_type")
	if evidenceType != "" && !models.AllowedEvidenceTypes[evidenceType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evidence type must be one of: screenshot, document, audio, video, text"})
		return
	}

	userID := c.MustGet("user_id").(string)

	evidence, err := h.evidenceService.ListEvidence(userID, evidenceType, page, limit)
	if err != nil {
		h.logger.Error("Failed to list evidence", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch evidence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evidence": evidence})
}
