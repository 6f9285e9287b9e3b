package repository

import (
	"context"
	"crypto-storefront/internal/model"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProposalRepository interface {
	Create(ctx context.Context, proposal *model.Proposal) error
	FindByID(ctx context.Context, proposalID string) (*model.Proposal, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Proposal, error)
	ListAll(ctx context.Context) ([]*model.Proposal, error)
	Accept(ctx context.Context, proposalID string, cost decimal.Decimal, imageURLs []string) error
	Delete(ctx context.Context, proposalID string) error
}

type proposalRepoImpl struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepoImpl{
		db: db,
	}
}

func (r *proposalRepoImpl) Create(ctx context.Context, proposal *model.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepoImpl) FindByID(ctx context.Context, proposalID string) (*model.Proposal, error) {
	var proposal model.Proposal
	err := r.db.WithContext(ctx).
		Where("id = ?", proposalID).
		First(&proposal).Error
	if err != nil {
		return nil, err
	}

	return &proposal, nil
}

func (r *proposalRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Proposal, error) {
	var proposals []*model.Proposal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}

	return proposals, nil
}

func (r *proposalRepoImpl) ListAll(ctx context.Context) ([]*model.Proposal, error) {
	var proposals []*model.Proposal
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&proposals).Error
	if err != nil {
		return nil, err
	}

	return proposals, nil
}

func (r *proposalRepoImpl) Accept(ctx context.Context, proposalID string, cost decimal.Decimal, imageURLs []string) error {
	proposal, err := r.FindByID(ctx, proposalID)
	if err != nil {
		return err
	}

	proposal.Status = model.ProposalAccepted
	proposal.EstimatedCost = decimal.NewNullDecimal(cost)
	proposal.ImageURLs = imageURLs
	proposal.UpdatedAt = time.Now()

	return r.db.WithContext(ctx).
		Model(proposal).
		Select("status", "estimated_cost", "image_urls", "updated_at").
		Updates(proposal).Error
}

func (r *proposalRepoImpl) Delete(ctx context.Context, proposalID string) error {
	result := r.db.WithContext(ctx).Delete(&model.Proposal{}, "id = ?", proposalID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
