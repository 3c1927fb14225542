package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shelflog/backend/internal/domain/identity"
	"github.com/shelflog/backend/internal/domain/shared"
	"github.com/shelflog/backend/internal/infrastructure/logger"
	"github.com/shelflog/backend/internal/infrastructure/persistence/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormProfileRepository implements identity.ProfileRepository and
// identity.CredentialRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// FindByID finds the profile of a principal
func (r *GormProfileRepository) FindByID(ctx context.Context, principalID uuid.UUID) (*identity.Profile, error) {
	var row models.ProfileModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError("find profile", err)
	}
	return row.ToDomain()
}

// FindAll returns every well-formed profile; malformed rows are logged and skipped
func (r *GormProfileRepository) FindAll(ctx context.Context) ([]identity.Profile, error) {
	var rows []models.ProfileModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewPersistenceError("list profiles", err)
	}

	profiles := make([]identity.Profile, 0, len(rows))
	for i := range rows {
		p, err := rows[i].ToDomain()
		if err != nil {
			logger.FromContext(ctx).Warn("Skipping malformed profile row",
				zap.String("profile_id", rows[i].ID.String()), zap.Error(err))
			continue
		}
		profiles = append(profiles, *p)
	}
	return profiles, nil
}

// FindByEmail finds a credential by normalized email
func (r *GormProfileRepository) FindByEmail(ctx context.Context, email string) (*identity.Credential, error) {
	var row models.CredentialModel
	if err := r.db.WithContext(ctx).First(&row, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewPersistenceError("find credential", err)
	}
	return row.ToDomain(), nil
}

// Register stores the credential and the profile in one transaction
func (r *GormProfileRepository) Register(ctx context.Context, credential *identity.Credential, profile *identity.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.CredentialModel{}).Where("email = ?", credential.Email).Count(&taken).Error; err != nil {
			return err
		}
		if taken > 0 {
			return shared.ErrAlreadyExists
		}

		if err := tx.Create(models.ProfileModelFromDomain(profile)).Error; err != nil {
			return err
		}
		cred := models.CredentialModelFromDomain(credential)
		cred.CreatedAt = time.Now()
		return tx.Create(cred).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, shared.ErrAlreadyExists), errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return shared.NewPersistenceError("register profile", err)
	}
}

var (
	_ identity.ProfileRepository    = (*GormProfileRepository)(nil)
	_ identity.CredentialRepository = (*GormProfileRepository)(nil)
)
