package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/dates"
	notificationDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/notification"
	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*notificationDatamodel.Notification, error)
	GetAll(ctx context.Context) ([]*notificationDatamodel.Notification, error)
	Create(ctx context.Context, n *notificationDatamodel.Notification) error
	Update(ctx context.Context, n *notificationDatamodel.Notification) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo      RepositoryAPI
	uow       internal.UnitOfWork
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(repo RepositoryAPI, uow internal.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		uow:       uow,
		publisher: events.NopPublisher{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*NotificationDTO, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToNotificationDTO(FromDataModel(row))
	return &dto, nil
}

// GetAll returns notifications ordered by expiry, latest first. With onlyActive
// it drops inactive and expired entries.
func (s *Service) GetAll(ctx context.Context, onlyActive bool) ([]NotificationDTO, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get notifications from repository", "error", err)
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	now := s.now()
	items := make([]*Notification, 0, len(rows))
	for _, row := range rows {
		n := FromDataModel(row)
		if onlyActive && !n.VisibleAt(now) {
			continue
		}
		items = append(items, n)
	}
	sort.SliceStable(items, func(i, j int) bool { return expiresAfter(items[i], items[j]) })

	out := make([]NotificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, ToNotificationDTO(n))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto CreateNotificationDTO) (*NotificationDTO, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	n := &Notification{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(dto.Title),
		Message:    strings.TrimSpace(dto.Message),
		ExpiryDate: dates.TimePtr(dto.ExpiryDate),
		IsActive:   true,
	}
	row := n.ToDataModel()
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to create notification", "error", err)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.InfoContext(ctx, "notification created", "notification_id", row.ID)
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, events.EventTypeNotificationCreated, row.ID, map[string]interface{}{"title": row.Title}))

	out := ToNotificationDTO(FromDataModel(row))
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, dto UpdateNotificationDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		row, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		row.Title = strings.TrimSpace(dto.Title)
		row.Message = strings.TrimSpace(dto.Message)
		row.ExpiryDate = dates.TimePtr(dto.ExpiryDate)
		row.IsActive = dto.IsActive
		return s.repo.Update(ctx, row)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "notification updated", "notification_id", id, "is_active", dto.IsActive)
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, events.EventTypeNotificationUpdated, id, map[string]interface{}{"is_active": dto.IsActive}))
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "notification deleted", "notification_id", id)
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, events.EventTypeNotificationDeleted, id, nil))
	return nil
}
