package repository

import (
	"context"
	"crypto-storefront/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, asset *model.UserAsset) error
	ListByUser(ctx context.Context, userID string) ([]*model.UserAsset, error)
}

type assetRepoImpl struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepoImpl{
		db: db,
	}
}

func (r *assetRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, asset *model.UserAsset) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("user_assets.quantity + ?", asset.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(asset).Error
}

func (r *assetRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.UserAsset, error) {
	var assets []*model.UserAsset

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}

	return assets, nil
}
