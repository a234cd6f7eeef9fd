package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"threatguard/internal/models"
)

// DetectionFilter narrows ListDetections. Zero-value fields are skipped.
type DetectionFilter struct {
	ThreatType  string
	ThreatLevel string
	Page        int
	Limit       int
}

type ThreatRepository interface {
	SaveDetection(d *models.ThreatDetection) error
	GetDetectionByID(id, userID string) (*models.ThreatDetection, error)
	ListDetections(userID string, f DetectionFilter) ([]*models.ThreatDetection, error)
	UpdateDetection(id, userID string, isVerified *bool, actionTaken *string) (bool, error)
}

type threatRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewThreatRepository(db *sqlx.DB, logger *zap.Logger) ThreatRepository {
	return &threatRepository{db: db, logger: logger}
}

func (r *threatRepository) SaveDetection(d *models.ThreatDetection) error {
	query := `INSERT INTO threat_detections
	          (id, user_id, threat_type, threat_level, content_analyzed, ai_confidence_score,
	           source_platform, source_url, is_verified, action_taken, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(query, d.ID, d.UserID, d.ThreatType, d.ThreatLevel, d.ContentAnalyzed,
		d.AIConfidenceScore, d.SourcePlatform, d.SourceURL, d.IsVerified, d.ActionTaken,
		d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *threatRepository) GetDetectionByID(id, userID string) (*models.ThreatDetection, error) {
	var d models.ThreatDetection
	query := `SELECT * FROM threat_detections WHERE id = $1 AND user_id = $2`
	if err := r.db.Get(&d, query, id, userID); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *threatRepository) ListDetections(userID string, f DetectionFilter) ([]*models.ThreatDetection, error) {
	query := `SELECT * FROM threat_detections WHERE user_id = $1`
	args := []interface{}{userID}

	if f.ThreatType != "" {
		args = append(args, f.ThreatType)
		query += fmt.Sprintf(" AND threat_type = $%d", len(args))
	}
	if f.ThreatLevel != "" {
		args = append(args, f.ThreatLevel)
		query += fmt.Sprintf(" AND threat_level = $%d", len(args))
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	detections := []*models.ThreatDetection{}
	if err := r.db.Select(&detections, query, args...); err != nil {
		return nil, err
	}
	return detections, nil
}

// UpdateDetection returns false when the detection does not exist or does
// not belong to the user.
func (r *threatRepository) UpdateDetection(id, userID string, isVerified *bool, actionTaken *string) (bool, error) {
	query := `UPDATE threat_detections
	          SET is_verified = COALESCE($3, is_verified),
	              action_taken = COALESCE($4, action_taken),
	              updated_at = now()
	          WHERE id = $1 AND user_id = $2`
	res, err := r.db.Exec(query, id, userID, isVerified, actionTaken)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
