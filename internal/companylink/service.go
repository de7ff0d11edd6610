package companylink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hrtool/internal"
	companylinkDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/companylink"
	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*companylinkDatamodel.CompanyLink, error)
	// GetAll returns links ordered by title.
	GetAll(ctx context.Context) ([]*companylinkDatamodel.CompanyLink, error)
	Create(ctx context.Context, link *companylinkDatamodel.CompanyLink) error
	Update(ctx context.Context, link *companylinkDatamodel.CompanyLink) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo      RepositoryAPI
	uow       internal.UnitOfWork
	publisher events.Publisher
	logger    *slog.Logger
}

type Option func(*Service)

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(repo RepositoryAPI, uow internal.UnitOfWork, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		uow:       uow,
		publisher: events.NopPublisher{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*CompanyLinkDTO, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToCompanyLinkDTO(row)
	return &dto, nil
}

func (s *Service) GetAll(ctx context.Context) ([]CompanyLinkDTO, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get company links from repository", "error", err)
		return nil, fmt.Errorf("failed to list company links: %w", err)
	}
	out := make([]CompanyLinkDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToCompanyLinkDTO(row))
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, dto LinkInputDTO) (*CompanyLinkDTO, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	row := &companylinkDatamodel.CompanyLink{ID: uuid.New()}
	dto.applyTo(row)
	if err := s.repo.Create(ctx, row); err != nil {
		s.logger.ErrorContext(ctx, "failed to create company link", "error", err)
		return nil, fmt.Errorf("failed to create company link: %w", err)
	}

	s.logger.InfoContext(ctx, "company link created", "link_id", row.ID, "url", row.URL)
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, events.EventTypeCompanyLinkCreated, row.ID, map[string]interface{}{"title": row.Title}))

	out := ToCompanyLinkDTO(row)
	return &out, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, dto LinkInputDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		row, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		dto.applyTo(row)
		return s.repo.Update(ctx, row)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "company link updated", "link_id", id)
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, events.EventTypeCompanyLinkUpdated, id, nil))
	return nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "company link deleted", "link_id", id)
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, events.EventTypeCompanyLinkDeleted, id, nil))
	return nil
}
