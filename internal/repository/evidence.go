package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"threatguard/internal/models"
)

type EvidenceRepository interface {
	SaveEvidence(e *models.Evidence) error
	ListEvidence(userID, evidenceType string, page, limit int) ([]*models.Evidence, error)
}

type evidenceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewEvidenceRepository(db *sqlx.DB, logger *zap.Logger) EvidenceRepository {
	return &evidenceRepository{db: db, logger: logger}
}

func (r *evidenceRepository) SaveEvidence(e *models.Evidence) error {
	query := `INSERT INTO evidence
	          (id, user_id, threat_detection_id, evidence_type, file_name, file_url,
	           file_size, mime_type, description_encrypted, is_encrypted, hash_value, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(query, e.ID, e.UserID, e.ThreatDetectionID, e.EvidenceType, e.FileName,
		e.FileURL, e.FileSize, e.MimeType, e.Description, e.IsEncrypted, e.HashValue, e.CreatedAt)
	return err
}

func (r *evidenceRepository) ListEvidence(userID, evidenceType string, page, limit int) ([]*models.Evidence, error) {
	query := `SELECT * FROM evidence WHERE user_id = $1`
	args := []interface{}{userID}

	if evidenceType != "" {
		args = append(args, evidenceType)
		query += fmt.Sprintf(" AND evidence_type = $%d", len(args))
	}

	args = append(args, limit, (page-1)*limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	evidence := []*models.Evidence{}
	if err := r.db.Select(&evidence, query, args...); err != nil {
		return nil, err
	}
	return evidence, nil
}
