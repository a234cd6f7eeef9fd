package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"threatguard/internal/models"
	"threatguard/internal/repository"
	"threatguard/internal/service"
)

const maxContentLength = 10000

type ThreatHandler interface {
	Analyze(c *gin.Context)
	ListDetections(c *gin.Context)
	UpdateDetection(c *gin.Context)
}

type threatHandler struct {
	threatService service.ThreatService
	logger        *zap.Logger
}

func NewThreatHandler(threatService service.ThreatService, logger *zap.Logger) ThreatHandler {
	return &threatHandler{threatService: threatService, logger: logger}
}

type AnalyzeRequest struct {
	Content        string  `json:"content" binding:"required"`
	SourcePlatform *string `json:"source_platform"`
	SourceURL      *string `json:"source_url"`
}

// Analyze handles POST /api/threats/analyze. Validation happens here, before
// the pipeline runs: the analyzer itself assumes pre-validated input.
func (h *threatHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content to analyze cannot be empty"})
		return
	}
	if utf8.RuneCountInString(req.Content) > maxContentLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content must be less than 10000 characters"})
		return
	}

	userID := c.MustGet("user_id").(string)

	result, err := h.threatService.AnalyzeContent(userID, content, req.SourcePlatform, req.SourceURL)
	if err != nil {
		h.logger.Error("Failed to analyze content", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze threat"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListDetections handles GET /api/threats/detections.
// Query parameters: threat_type, threat_level, page, limit.
func (h *threatHandler) ListDetections(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.MustGet("user_id").(string)
	filter := repository.DetectionFilter{
		ThreatType:  c.Query("threat_type"),
		ThreatLevel: c.Query("threat_level"),
		Page:        page,
		Limit:       limit,
	}

	detections, err := h.threatService.ListDetections(userID, filter)
	if err != nil {
		h.logger.Error("Failed to list detections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch threat detections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detections": detections})
}

type UpdateDetectionRequest struct {
	IsVerified  *bool   `json:"is_verified"`
	ActionTaken *string `json:"action_taken"`
}

// UpdateDetection handles PUT /api/threats/detections/:id (verify a
// detection or record the action taken).
func (h *threatHandler) UpdateDetection(c *gin.Context) {
	var req UpdateDetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.IsVerified == nil && req.ActionTaken == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}
	if req.ActionTaken != nil && !models.AllowedActions[*req.ActionTaken] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action. Valid values: none, reported, blocked, escalated"})
		return
	}

	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	if err := h.threatService.UpdateDetection(userID, id, req.IsVerified, req.ActionTaken); err != nil {
		if errors.Is(err, service.ErrDetectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Threat detection not found"})
			return
		}
		h.logger.Error("Failed to update detection", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update threat detection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Threat detection updated successfully", "success": true})
}

// parsePagination reads page/limit query parameters with the API-wide
// defaults (page 1, limit 20, limit capped at 100).
func parsePagination(c *gin.Context) (int, int, error) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return 0, 0, errors.New("page must be a positive integer")
		}
		page = parsed
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return 0, 0, errors.New("limit must be between 1 and 100")
		}
		limit = parsed
	}

	return page, limit, nil
}
