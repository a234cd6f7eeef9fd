package models

import "time"

// Allowed values for ThreatDetection.ActionTaken.
var AllowedActions = map[string]bool{
	"none":      true,
	"reported":  true,
	"blocked":   true,
	"escalated": true,
}

// Allowed values for Evidence.EvidenceType.
var AllowedEvidenceTypes = map[string]bool{
	"screenshot": true,
	"document":   true,
	"audio":      true,
	"video":      true,
	"text":       true,
}

// ThreatDetection is a stored analysis outcome from the 'threat_detections'
// table. The analyzed content and the analysis result are persisted verbatim;
// is_verified and action_taken start as false/"none" and are updated by the
// user afterwards.
type ThreatDetection struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	ThreatType        string    `db:"threat_type" json:"threat_type"`
	ThreatLevel       string    `db:"threat_level" json:"threat_level"`
	ContentAnalyzed   string    `db:"content_analyzed" json:"content_analyzed"`
	AIConfidenceScore float64   `db:"ai_confidence_score" json:"ai_confidence_score"`
	SourcePlatform    *string   `db:"source_platform" json:"source_platform,omitempty"`
	SourceURL         *string   `db:"source_url" json:"source_url,omitempty"`
	IsVerified        bool      `db:"is_verified" json:"is_verified"`
	ActionTaken       string    `db:"action_taken" json:"action_taken"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// Evidence is a stored artifact supporting a detection (screenshot, document
// and so on). The description is encrypted at rest with the owner's data key;
// HashValue is the integrity digest computed when the record was created.
type Evidence struct {
	ID                string    `db:"id" json:"id"`
	UserID            string    `db:"user_id" json:"user_id"`
	ThreatDetectionID *string   `db:"threat_detection_id" json:"threat_detection_id,omitempty"`
	EvidenceType      string    `db:"evidence_type" json:"evidence_type"`
	FileName          string    `db:"file_name" json:"file_name"`
	FileURL           string    `db:"file_url" json:"file_url"`
	FileSize          *int64    `db:"file_size" json:"file_size,omitempty"`
	MimeType          *string   `db:"mime_type" json:"mime_type,omitempty"`
	Description       string    `db:"description_encrypted" json:"description,omitempty"`
	IsEncrypted       bool      `db:"is_encrypted" json:"is_encrypted"`
	HashValue         string    `db:"hash_value" json:"hash_value"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
