package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"threatguard/internal/crypto"
	"threatguard/internal/models"
	"threatguard/internal/repository"
	"threatguard/internal/threat"
)

// StoreEvidenceInput carries a validated evidence submission.
type StoreEvidenceInput struct {
	ThreatDetectionID *string
	EvidenceType      string
	FileName          string
	FileURL           string
	FileSize          *int64
	MimeType          *string
	Description       string
}

type EvidenceService interface {
	StoreEvidence(userID string, in StoreEvidenceInput) (*models.Evidence, error)
	ListEvidence(userID, evidenceType string, page, limit int) ([]*models.Evidence, error)
}

type evidenceService struct {
	evidenceRepo repository.EvidenceRepository
	authRepo     repository.AuthRepository
	keyManager   *crypto.KeyManager
	logger       *zap.Logger
}

func NewEvidenceService(
	evidenceRepo repository.EvidenceRepository,
	authRepo repository.AuthRepository,
	keyManager *crypto.KeyManager,
	logger *zap.Logger,
) EvidenceService {
	return &evidenceService{
		evidenceRepo: evidenceRepo,
		authRepo:     authRepo,
		keyManager:   keyManager,
		logger:       logger,
	}
}

// StoreEvidence computes the integrity digest for the artifact, encrypts the
// description with the owner's data key and persists the record. The digest
// binds the file locator to the storage moment; retention and at-rest
// encryption of the file itself belong to the storage backend.
func (s *evidenceService) StoreEvidence(userID string, in StoreEvidenceInput) (*models.Evidence, error) {
	now := time.Now().UTC()

	evidence := &models.Evidence{
		ID:                uuid.NewString(),
		UserID:            userID,
		ThreatDetectionID: in.ThreatDetectionID,
		EvidenceType:      in.EvidenceType,
		FileName:          in.FileName,
		FileURL:           in.FileURL,
		FileSize:          in.FileSize,
		MimeType:          in.MimeType,
		HashValue:         threat.IntegrityDigest(in.FileURL, now),
		CreatedAt:         now,
	}

	if in.Description != "" {
		user, err := s.authRepo.GetUserByID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load user for encryption: %w", err)
		}
		encrypted, err := s.keyManager.EncryptForUser(in.Description, user.ID, user.DKEncrypted)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt description: %w", err)
		}
		evidence.Description = encrypted
		evidence.IsEncrypted = true
	}

	if err := s.evidenceRepo.SaveEvidence(evidence); err != nil {
		return nil, fmt.Errorf("failed to save evidence: %w", err)
	}

	s.logger.Info("Evidence stored",
		zap.String("user_id", userID),
		zap.String("evidence_type", in.EvidenceType),
		zap.String("evidence_id", evidence.ID))

	return evidence, nil
}

// ListEvidence returns the user's evidence with descriptions decrypted for
// display. A record whose description cannot be decrypted is returned with
// the ciphertext untouched rather than dropped.
func (s *evidenceService) ListEvidence(userID, evidenceType string, page, limit int) ([]*models.Evidence, error) {
	evidence, err := s.evidenceRepo.ListEvidence(userID, evidenceType, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}

	var user *models.User
	for _, e := range evidence {
		if !e.IsEncrypted || e.Description == "" {
			continue
		}
		if user == nil {
			user, err = s.authRepo.GetUserByID(userID)
			if err != nil {
				return nil, fmt.Errorf("failed to load user for decryption: %w", err)
			}
		}
		decrypted, err := s.keyManager.DecryptForUser(e.Description, user.ID, user.DKEncrypted)
		if err != nil {
			s.logger.Warn("Failed to decrypt evidence description",
				zap.String("evidence_id", e.ID),
				zap.Error(err))
			continue
		}
		e.Description = decrypted
	}
	return evidence, nil
}
