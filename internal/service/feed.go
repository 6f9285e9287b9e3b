package service

import (
	"context"
	"crypto-storefront/internal/dto"
	"crypto-storefront/internal/localstore"
	"crypto-storefront/internal/model"
	"crypto-storefront/internal/pagination"
	"crypto-storefront/internal/realtime"
	"crypto-storefront/internal/repository"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const FeedUpdates = "updates"

var UpdateTypes = []string{"feature", "security", "news", "release"}

type FeedService interface {
	List(ctx context.Context, q string, page int, admin bool) (pagination.Page[dto.UpdateView], error)
	Create(ctx context.Context, input dto.UpdateInput) (*model.Update, error)
	Edit(ctx context.Context, updateID string, input dto.UpdateInput) (*model.Update, error)
	Delete(ctx context.Context, updateID string) error
	MarkSeen(ctx context.Context, user *model.User) error
	Unread(ctx context.Context, user *model.User) (int, error)
	Feedback(ctx context.Context, user *model.User, updateID string, req dto.FeedbackRequest) (*model.Update, error)
}

type feedServiceImpl struct {
	updateRepo repository.UpdateRepository
	store      localstore.Store
	hub        publisher
	adminPage  int
	userPage   int
	now        func() time.Time
}

func NewFeedService(
	updateRepo repository.UpdateRepository,
	store localstore.Store,
	hub *realtime.Hub,
	adminPageSize int,
	dashboardPageSize int,
) FeedService {
	return &feedServiceImpl{
		updateRepo: updateRepo,
		store:      store,
		hub:        hub,
		adminPage:  adminPageSize,
		userPage:   dashboardPageSize,
		now:        time.Now,
	}
}

func viewOf(u *model.Update) dto.UpdateView {
	view := dto.UpdateView{
		Update:       u,
		CommentCount: len(u.Comments),
		RatingCount:  len(u.Ratings),
	}
	if len(u.Ratings) > 0 {
		sum := 0
		for _, r := range u.Ratings {
			sum += r.Value
		}
		view.AverageRating = float64(sum) / float64(len(u.Ratings))
	}
	return view
}

func (s *feedServiceImpl) List(ctx context.Context, q string, page int, admin bool) (pagination.Page[dto.UpdateView], error) {
	updates, err := s.updateRepo.List(ctx)
	if err != nil {
		return pagination.Page[dto.UpdateView]{}, fmt.Errorf("list updates: %w", err)
	}

	views := make([]dto.UpdateView, 0, len(updates))
	for _, u := range updates {
		if pagination.ContainsFold(u.Title, q) || pagination.ContainsFold(u.Content, q) {
			views = append(views, viewOf(u))
		}
	}

	size := s.userPage
	if admin {
		size = s.adminPage
	}
	return pagination.Paginate(views, page, size), nil
}

func validateUpdate(input dto.UpdateInput) (dto.UpdateInput, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return input, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if input.Type == "" {
		input.Type = UpdateTypes[0]
	}
	if !slices.Contains(UpdateTypes, input.Type) {
		return input, fmt.Errorf("%w: unknown update type %q", ErrInvalidInput, input.Type)
	}
	return input, nil
}

func (s *feedServiceImpl) Create(ctx context.Context, input dto.UpdateInput) (*model.Update, error) {
	input, err := validateUpdate(input)
	if err != nil {
		return nil, err
	}

	update := &model.Update{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Content:         input.Content,
		Type:            input.Type,
		LinkedProductID: input.LinkedProductID,
		Comments:        []model.Comment{},
		Ratings:         []model.Rating{},
		CreatedAt:       s.now(),
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		return nil, fmt.Errorf("create update: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionUpdates, realtime.OpCreated, update.ID, "", update)
	return update, nil
}

func (s *feedServiceImpl) Edit(ctx context.Context, updateID string, input dto.UpdateInput) (*model.Update, error) {
	input, err := validateUpdate(input)
	if err != nil {
		return nil, err
	}

	update, err := s.updateRepo.FindByID(ctx, updateID)
	if err != nil {
		return nil, fmt.Errorf("find update: %w", err)
	}
	update.Title = input.Title
	update.Content = input.Content
	update.Type = input.Type
	update.LinkedProductID = input.LinkedProductID
	update.UpdatedAt = s.now()

	if err := s.updateRepo.Save(ctx, update); err != nil {
		return nil, fmt.Errorf("save update: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionUpdates, realtime.OpUpdated, update.ID, "", update)
	return update, nil
}

func (s *feedServiceImpl) Delete(ctx context.Context, updateID string) error {
	if err := s.updateRepo.Delete(ctx, updateID); err != nil {
		return fmt.Errorf("delete update: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionUpdates, realtime.OpDeleted, updateID, "", nil)
	return nil
}

func (s *feedServiceImpl) MarkSeen(ctx context.Context, user *model.User) error {
	if err := s.store.MarkSeen(ctx, user.ID, FeedUpdates, s.now()); err != nil {
		return fmt.Errorf("mark updates seen: %w", err)
	}
	return nil
}

// Unread counts posts created after the user last opened the feed.
func (s *feedServiceImpl) Unread(ctx context.Context, user *model.User) (int, error) {
	lastSeen, err := s.store.LastSeen(ctx, user.ID, FeedUpdates)
	if err != nil {
		return 0, fmt.Errorf("load last seen: %w", err)
	}

	updates, err := s.updateRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list updates: %w", err)
	}

	unread := 0
	for _, u := range updates {
		if u.CreatedAt.After(lastSeen) {
			unread++
		}
	}
	return unread, nil
}

// Feedback appends a comment and sets the user's rating. A new rating
// replaces the user's earlier one.
func (s *feedServiceImpl) Feedback(ctx context.Context, user *model.User, updateID string, req dto.FeedbackRequest) (*model.Update, error) {
	comment := strings.TrimSpace(req.Comment)
	if comment == "" && req.Rating == 0 {
		return nil, ErrEmptyFeedback
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	update, err := s.updateRepo.FindByID(ctx, updateID)
	if err != nil {
		return nil, fmt.Errorf("find update: %w", err)
	}

	if comment != "" {
		update.Comments = append(update.Comments, model.Comment{
			UserID:    user.ID,
			UserName:  user.DisplayName,
			Text:      comment,
			CreatedAt: s.now(),
		})
	}
	if req.Rating > 0 {
		update.Ratings = slices.DeleteFunc(update.Ratings, func(r model.Rating) bool {
			return r.UserID == user.ID
		})
		update.Ratings = append(update.Ratings, model.Rating{UserID: user.ID, Value: req.Rating})
	}

	if err := s.updateRepo.Save(ctx, update); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	publish(ctx, s.hub, realtime.CollectionUpdates, realtime.OpUpdated, update.ID, "", update)
	return update, nil
}
