package repository

import (
	"context"
	"crypto-storefront/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*model.Settings, error)
	Upsert(ctx context.Context, settings *model.Settings) error
}

type settingsRepoImpl struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepoImpl{
		db: db,
	}
}

// Get returns gorm.ErrRecordNotFound until the document is first written.
func (r *settingsRepoImpl) Get(ctx context.Context) (*model.Settings, error) {
	var settings model.Settings
	err := r.db.WithContext(ctx).
		Where("id = ?", model.SettingsID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}

	settings.Normalize()
	return &settings, nil
}

func (r *settingsRepoImpl) Upsert(ctx context.Context, settings *model.Settings) error {
	settings.ID = model.SettingsID
	settings.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"app_name",
			"seo_description",
			"primary_color",
			"hero",
			"gateways",
			"payment",
			"telegram",
			"updated_at",
		}),
	}).Create(settings).Error
}
