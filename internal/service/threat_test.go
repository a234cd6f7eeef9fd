package service

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"threatguard/internal/models"
	"threatguard/internal/repository"
	"threatguard/internal/threat"
)

type fakeThreatRepo struct {
	detections []*models.ThreatDetection
	updated    bool
}

func (f *fakeThreatRepo) SaveDetection(d *models.ThreatDetection) error {
	f.detections = append(f.detections, d)
	return nil
}

func (f *fakeThreatRepo) GetDetectionByID(id, userID string) (*models.ThreatDetection, error) {
	for _, d := range f.detections {
		if d.ID == id && d.UserID == userID {
			return d, nil
		}
	}
	return nil, ErrDetectionNotFound
}

func (f *fakeThreatRepo) ListDetections(userID string, _ repository.DetectionFilter) ([]*models.ThreatDetection, error) {
	var out []*models.ThreatDetection
	for _, d := range f.detections {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeThreatRepo) UpdateDetection(id, userID string, _ *bool, _ *string) (bool, error) {
	for _, d := range f.detections {
		if d.ID == id && d.UserID == userID {
			return true, nil
		}
	}
	return f.updated, nil
}

type fakeNotificationRepo struct {
	saved []*models.Notification
}

func (f *fakeNotificationRepo) SaveNotification(n *models.Notification) error {
	f.saved = append(f.saved, n)
	return nil
}

func (f *fakeNotificationRepo) ListNotifications(string, repository.NotificationFilter) ([]*models.Notification, int, error) {
	return f.saved, len(f.saved), nil
}

func (f *fakeNotificationRepo) CountUnread(string) (int, error) { return len(f.saved), nil }

func (f *fakeNotificationRepo) UpdateRead(string, string, bool) (bool, error) { return true, nil }

type fakeNotifier struct {
	sent []*models.Notification
}

func (f *fakeNotifier) SendThreatAlert(n *models.Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

func newTestService(t *testing.T) (ThreatService, *fakeThreatRepo, *fakeNotificationRepo, *fakeNotifier) {
	t.Helper()
	registry, err := threat.NewDefault()
	if err != nil {
		t.Fatalf("NewDefault() failed: %v", err)
	}
	threatRepo := &fakeThreatRepo{}
	notificationRepo := &fakeNotificationRepo{}
	notifier := &fakeNotifier{}
	svc := NewThreatService(threat.NewAnalyzer(registry), threatRepo, notificationRepo, notifier, zap.NewNop())
	return svc, threatRepo, notificationRepo, notifier
}

func TestAnalyzeContentPersistsDetection(t *testing.T) {
	svc, threatRepo, notificationRepo, notifier := newTestService(t)

	result, err := svc.AnalyzeContent("user-1", "hello, nice weather", nil, nil)
	if err != nil {
		t.Fatalf("AnalyzeContent() failed: %v", err)
	}
	if result.ThreatDetected {
		t.Error("benign content must not be detected")
	}

	if len(threatRepo.detections) != 1 {
		t.Fatalf("stored detections = %d, want 1", len(threatRepo.detections))
	}
	d := threatRepo.detections[0]
	if d.IsVerified {
		t.Error("new detection must start unverified")
	}
	if d.ActionTaken != "none" {
		t.Errorf("action_taken = %q, want none", d.ActionTaken)
	}
	if d.ContentAnalyzed != "hello, nice weather" {
		t.Errorf("content stored verbatim, got %q", d.ContentAnalyzed)
	}

	if len(notificationRepo.saved) != 0 || len(notifier.sent) != 0 {
		t.Error("benign content must not raise an alert")
	}
}

func TestAnalyzeContentEscalates(t *testing.T) {
	svc, threatRepo, notificationRepo, notifier := newTestService(t)

	result, err := svc.AnalyzeContent("user-1", "you are so stupid and ugly, kill yourself!", nil, nil)
	if err != nil {
		t.Fatalf("AnalyzeContent() failed: %v", err)
	}
	if !result.ThreatLevel.AtLeast(threat.SeverityHigh) {
		t.Fatalf("threat_level = %s, want high or critical", result.ThreatLevel)
	}

	if len(notificationRepo.saved) != 1 {
		t.Fatalf("stored notifications = %d, want 1", len(notificationRepo.saved))
	}
	n := notificationRepo.saved[0]
	if n.NotificationType != models.NotificationTypeThreatAlert {
		t.Errorf("notification_type = %q, want %q", n.NotificationType, models.NotificationTypeThreatAlert)
	}
	if n.Priority != threat.PriorityHigh && n.Priority != threat.PriorityUrgent {
		t.Errorf("priority = %q, want high or urgent", n.Priority)
	}
	if result.ThreatLevel == threat.SeverityCritical && n.Priority != threat.PriorityUrgent {
		t.Errorf("critical detections must carry urgent priority, got %q", n.Priority)
	}

	var metadata map[string]string
	if err := json.Unmarshal(n.Metadata, &metadata); err != nil {
		t.Fatalf("metadata is not valid JSON: %v", err)
	}
	if metadata["threat_id"] != threatRepo.detections[0].ID {
		t.Errorf("metadata threat_id = %q, want %q", metadata["threat_id"], threatRepo.detections[0].ID)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("delivered alerts = %d, want 1", len(notifier.sent))
	}
	if notifier.sent[0] != n {
		t.Error("the delivered alert must be the stored notification")
	}
}

func TestAnalyzeContentMediumDoesNotEscalate(t *testing.T) {
	svc, _, notificationRepo, notifier := newTestService(t)

	// One phishing match: detected, medium severity, below escalation gate.
	result, err := svc.AnalyzeContent("user-1", "please verify account", nil, nil)
	if err != nil {
		t.Fatalf("AnalyzeContent() failed: %v", err)
	}
	if !result.ThreatDetected {
		t.Fatal("expected detection")
	}
	if result.ThreatLevel != threat.SeverityMedium {
		t.Fatalf("threat_level = %s, want medium", result.ThreatLevel)
	}
	if len(notificationRepo.saved) != 0 || len(notifier.sent) != 0 {
		t.Error("medium severity must not raise an alert")
	}
}

func TestUpdateDetectionNotFound(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	verified := true
	err := svc.UpdateDetection("user-1", "missing", &verified, nil)
	if err != ErrDetectionNotFound {
		t.Errorf("err = %v, want ErrDetectionNotFound", err)
	}
}
