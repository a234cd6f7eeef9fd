package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"threatguard/internal/repository"
)

type NotificationHandler interface {
	ListNotifications(c *gin.Context)
	UpdateNotification(c *gin.Context)
}

type notificationHandler struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationHandler(notificationRepo repository.NotificationRepository, logger *zap.Logger) NotificationHandler {
	return &notificationHandler{notificationRepo: notificationRepo, logger: logger}
}

// ListNotifications handles GET /api/notifications.
// Query parameters: notification_type, priority, is_read, page, limit.
func (h *notificationHandler) ListNotifications(c *gin.Context) {
	page, limit, err := parsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := repository.NotificationFilter{
		NotificationType: c.Query("notification_type"),
		Priority:         c.Query("priority"),
		Page:             page,
		Limit:            limit,
	}
	if raw := c.Query("is_read"); raw != "" {
		isRead, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_read must be true or false"})
			return
		}
		filter.IsRead = &isRead
	}

	userID := c.MustGet("user_id").(string)

	notifications, total, err := h.notificationRepo.ListNotifications(userID, filter)
	if err != nil {
		h.logger.Error("Failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	unread, err := h.notificationRepo.CountUnread(userID)
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"unread_count":  unread,
		"page":          page,
		"limit":         limit,
	})
}

type UpdateNotificationRequest struct {
	IsRead *bool `json:"is_read"`
}

// UpdateNotification handles PUT /api/notifications/:id (mark read/unread;
// defaults to read when the body carries no value).
func (h *notificationHandler) UpdateNotification(c *gin.Context) {
	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	isRead := true
	if req.IsRead != nil {
		isRead = *req.IsRead
	}

	userID := c.MustGet("user_id").(string)
	id := c.Param("id")

	updated, err := h.notificationRepo.UpdateRead(id, userID, isRead)
	if err != nil {
		h.logger.Error("Failed to update notification", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification updated successfully", "success": true})
}
