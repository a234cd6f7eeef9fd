package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"threatguard/internal/models"
)

type AuthRepository interface {
	CreateUser(user *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
}

type authRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAuthRepository(db *sqlx.DB, logger *zap.Logger) AuthRepository {
	return &authRepository{db: db, logger: logger}
}

func (r *authRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, username, password_hash, dk_encrypted, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(query, user.ID, user.Username, user.PasswordHash, user.DKEncrypted, user.CreatedAt)
	return err
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Get(&user, `SELECT * FROM users WHERE username = $1`, username); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *authRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Get(&user, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &user, nil
}
