package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"threatguard/internal/models"
	"threatguard/internal/repository"
	"threatguard/internal/threat"
)

var ErrDetectionNotFound = errors.New("threat detection not found")

// AlertNotifier delivers an escalation notification to the user through an
// external channel. Persistence of the notification row happens before
// delivery; a delivery failure never fails the analysis.
type AlertNotifier interface {
	SendThreatAlert(n *models.Notification) error
}

type ThreatService interface {
	AnalyzeContent(userID, content string, sourcePlatform, sourceURL *string) (*threat.Result, error)
	ListDetections(userID string, f repository.DetectionFilter) ([]*models.ThreatDetection, error)
	UpdateDetection(userID, id string, isVerified *bool, actionTaken *string) error
}

type threatService struct {
	analyzer         *threat.Analyzer
	threatRepo       repository.ThreatRepository
	notificationRepo repository.NotificationRepository
	notifier         AlertNotifier
	logger           *zap.Logger
}

func NewThreatService(
	analyzer *threat.Analyzer,
	threatRepo repository.ThreatRepository,
	notificationRepo repository.NotificationRepository,
	notifier AlertNotifier,
	logger *zap.Logger,
) ThreatService {
	return &threatService{
		analyzer:         analyzer,
		threatRepo:       threatRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
		logger:           logger,
	}
}

// AnalyzeContent runs the classification pipeline over pre-validated content,
// persists the detection and, when the result escalates, records and delivers
// a threat-alert notification.
func (s *threatService) AnalyzeContent(userID, content string, sourcePlatform, sourceURL *string) (*threat.Result, error) {
	result := s.analyzer.Analyze(content)

	now := time.Now().UTC()
	detection := &models.ThreatDetection{
		ID:                uuid.NewString(),
		UserID:            userID,
		ThreatType:        string(result.ThreatType),
		ThreatLevel:       string(result.ThreatLevel),
		ContentAnalyzed:   content,
		AIConfidenceScore: result.ConfidenceScore,
		SourcePlatform:    sourcePlatform,
		SourceURL:         sourceURL,
		IsVerified:        false,
		ActionTaken:       "none",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.threatRepo.SaveDetection(detection); err != nil {
		return nil, fmt.Errorf("failed to save detection: %w", err)
	}

	if event, ok := threat.Escalate(result, detection.ID); ok {
		if err := s.raiseAlert(userID, event); err != nil {
			// The detection is stored and the analysis stands; a lost alert
			// is logged, not surfaced to the caller.
			s.logger.Warn("Failed to raise escalation alert",
				zap.String("detection_id", detection.ID),
				zap.Error(err))
		}
	}

	s.logger.Info("Threat analysis completed",
		zap.String("user_id", userID),
		zap.String("threat_type", string(result.ThreatType)),
		zap.String("threat_level", string(result.ThreatLevel)))

	return &result, nil
}

func (s *threatService) raiseAlert(userID string, event *threat.EscalationEvent) error {
	metadata, err := json.Marshal(map[string]string{"threat_id": event.DetectionID})
	if err != nil {
		return err
	}

	notification := &models.Notification{
		ID:               uuid.NewString(),
		UserID:           userID,
		NotificationType: models.NotificationTypeThreatAlert,
		Title:            fmt.Sprintf("%s Threat Detected", capitalize(string(event.Level))),
		Message:          fmt.Sprintf("We detected a %s level %s threat", event.Level, event.Category),
		Priority:         event.Priority,
		Metadata:         metadata,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(notification); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.SendThreatAlert(notification); err != nil {
			return fmt.Errorf("failed to deliver alert: %w", err)
		}
	}
	return nil
}

func (s *threatService) ListDetections(userID string, f repository.DetectionFilter) ([]*models.ThreatDetection, error) {
	detections, err := s.threatRepo.ListDetections(userID, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}
	return detections, nil
}

func (s *threatService) UpdateDetection(userID, id string, isVerified *bool, actionTaken *string) error {
	updated, err := s.threatRepo.UpdateDetection(id, userID, isVerified, actionTaken)
	if err != nil {
		return fmt.Errorf("failed to update detection: %w", err)
	}
	if !updated {
		return ErrDetectionNotFound
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
