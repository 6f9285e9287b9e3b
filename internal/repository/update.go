package repository

import (
	"context"
	"crypto-storefront/internal/model"

	"gorm.io/gorm"
)

type UpdateRepository interface {
	Create(ctx context.Context, update *model.Update) error
	Save(ctx context.Context, update *model.Update) error
	FindByID(ctx context.Context, updateID string) (*model.Update, error)
	List(ctx context.Context) ([]*model.Update, error)
	Delete(ctx context.Context, updateID string) error
}

type updateRepoImpl struct {
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepoImpl{
		db: db,
	}
}

func (r *updateRepoImpl) Create(ctx context.Context, update *model.Update) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *updateRepoImpl) Save(ctx context.Context, update *model.Update) error {
	return r.db.WithContext(ctx).Save(update).Error
}

func (r *updateRepoImpl) FindByID(ctx context.Context, updateID string) (*model.Update, error) {
	var update model.Update
	err := r.db.WithContext(ctx).
		Where("id = ?", updateID).
		First(&update).Error
	if err != nil {
		return nil, err
	}

	return &update, nil
}

func (r *updateRepoImpl) List(ctx context.Context) ([]*model.Update, error) {
	var updates []*model.Update
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}

	return updates, nil
}

func (r *updateRepoImpl) Delete(ctx context.Context, updateID string) error {
	result := r.db.WithContext(ctx).Delete(&model.Update{}, "id = ?", updateID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
