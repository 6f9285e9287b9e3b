package service

import (
	"context"
	"crypto-storefront/internal/cart"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/notify"
	"crypto-storefront/internal/pagination"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CustomCategory      = "Custom Synthesis"
	DefaultCustomImage  = "https://images.unsplash.com/photo-1614850523296-d8c1af93d400?auto=format&fit=crop&q=80"
	customNamePrefixLen = 30
)

type ProposalService interface {
	Create(ctx context.Context, user *model.User, input dto.ProposalInput) (*model.Proposal, error)
	ListMine(ctx context.Context, user *model.User, q string, page int) (pagination.Page[*model.Proposal], error)
	ListAll(ctx context.Context, q string, page int) (pagination.Page[*model.Proposal], error)
	Accept(ctx context.Context, proposalID, estimatedCost, imageURLs string) (*model.Proposal, error)
	Delete(ctx context.Context, proposalID string) error
	AddToCart(ctx context.Context, user *model.User, proposalID string) (*cart.Cart, cart.Item, error)
}

type proposalServiceImpl struct {
	proposalRepo repository.ProposalRepository
	cartService  CartService
	hub          publisher
	notifier     Notifier
	adminPage    int
	userPage     int
}

func NewProposalService(
	proposalRepo repository.ProposalRepository,
	cartService CartService,
	hub *realtime.Hub,
	notifier Notifier,
	adminPageSize int,
	dashboardPageSize int,
) ProposalService {
	return &proposalServiceImpl{
		proposalRepo: proposalRepo,
		cartService:  cartService,
		hub:          hub,
		notifier:     notifier,
		adminPage:    adminPageSize,
		userPage:     dashboardPageSize,
	}
}

func (s *proposalServiceImpl) Create(ctx context.Context, user *model.User, input dto.ProposalInput) (*model.Proposal, error) {
	if err := ensureActive(user); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description required", ErrInvalidInput)
	}

	proposal := &model.Proposal{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		UserEmail:    user.Email,
		UserName:     user.DisplayName,
		Description:  description,
		ReferenceURL: strings.TrimSpace(input.ReferenceURL),
		WhatsApp:     strings.TrimSpace(input.WhatsApp),
		IsPrivate:    input.IsPrivate,
		Status:       model.ProposalPending,
		ImageURLs:    []string{},
	}
	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("create proposal: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionProposals, realtime.OpCreated, proposal.ID, proposal.UserID, proposal)
	s.notifier.Notify(ctx, notify.ProposalSubmitted(proposal))
	return proposal, nil
}

func (s *proposalServiceImpl) ListMine(ctx context.Context, user *model.User, q string, page int) (pagination.Page[*model.Proposal], error) {
	proposals, err := s.proposalRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return pagination.Page[*model.Proposal]{}, fmt.Errorf("list proposals: %w", err)
	}

	proposals = pagination.Filter(proposals, func(p *model.Proposal) bool {
		return pagination.ContainsFold(p.Description, q)
	})
	return pagination.Paginate(proposals, page, s.userPage), nil
}

func (s *proposalServiceImpl) ListAll(ctx context.Context, q string, page int) (pagination.Page[*model.Proposal], error) {
	proposals, err := s.proposalRepo.ListAll(ctx)
	if err != nil {
		return pagination.Page[*model.Proposal]{}, fmt.Errorf("list proposals: %w", err)
	}

	proposals = pagination.Filter(proposals, func(p *model.Proposal) bool {
		return pagination.ContainsFold(p.Description, q) || pagination.ContainsFold(p.UserEmail, q)
	})
	return pagination.Paginate(proposals, page, s.adminPage), nil
}

// SplitImageURLs turns the comma separated admin input into a list, dropping
// blank entries.
func SplitImageURLs(csv string) []string {
	urls := []string{}
	for _, part := range strings.Split(csv, ",") {
		if u := strings.TrimSpace(part); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func (s *proposalServiceImpl) Accept(ctx context.Context, proposalID, estimatedCost, imageURLs string) (*model.Proposal, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(estimatedCost))
	if err != nil {
		return nil, ErrInvalidCost
	}
	if cost.IsNegative() {
		return nil, ErrInvalidCost
	}

	if err := s.proposalRepo.Accept(ctx, proposalID, cost, SplitImageURLs(imageURLs)); err != nil {
		return nil, fmt.Errorf("accept proposal: %w", err)
	}

	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, fmt.Errorf("find proposal: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionProposals, realtime.OpUpdated, proposal.ID, proposal.UserID, proposal)
	return proposal, nil
}

func (s *proposalServiceImpl) Delete(ctx context.Context, proposalID string) error {
	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return fmt.Errorf("find proposal: %w", err)
	}

	if err := s.proposalRepo.Delete(ctx, proposalID); err != nil {
		return fmt.Errorf("delete proposal: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionProposals, realtime.OpDeleted, proposalID, proposal.UserID, nil)
	return nil
}

// CustomProduct is the hidden cart product standing in for an accepted proposal.
func CustomProduct(p *model.Proposal) *model.Product {
	image := DefaultCustomImage
	if len(p.ImageURLs) > 0 {
		image = p.ImageURLs[0]
	}

	prefix := p.Description
	if r := []rune(prefix); len(r) > customNamePrefixLen {
		prefix = string(r[:customNamePrefixLen])
	}

	id := "custom-" + p.ID
	return &model.Product{
		ID:          id,
		Slug:        id,
		Name:        "Custom Build: " + prefix + "...",
		Description: p.Description,
		Price:       p.EstimatedCost.Decimal,
		ImageURLs:   []string{image},
		Category:    CustomCategory,
		IsCustom:    true,
		Hidden:      true,
	}
}

func (s *proposalServiceImpl) AddToCart(ctx context.Context, user *model.User, proposalID string) (*cart.Cart, cart.Item, error) {
	if err := ensureActive(user); err != nil {
		return nil, cart.Item{}, err
	}

	proposal, err := s.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, cart.Item{}, fmt.Errorf("find proposal: %w", err)
	}
	if proposal.UserID != user.ID && !user.IsAdmin {
		return nil, cart.Item{}, ErrForbidden
	}
	if proposal.Status != model.ProposalAccepted || !proposal.EstimatedCost.Valid {
		return nil, cart.Item{}, ErrProposalNotAccepted
	}

	return s.cartService.AddProduct(ctx, user, CustomProduct(proposal), cart.Options{})
}
