package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/validation"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"github.com/frahmantamala/hrtool/internal/core/events"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userDatamodel.User, error)
	GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error)
	GetAll(ctx context.Context) ([]*userDatamodel.User, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	Create(ctx context.Context, u *userDatamodel.User) error
	Update(ctx context.Context, u *userDatamodel.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearManager(ctx context.Context, managerID uuid.UUID) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Service struct {
	repo      RepositoryAPI
	uow       internal.UnitOfWork
	hasher    PasswordHasher
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mainly for tests around day boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(repo RepositoryAPI, uow internal.UnitOfWork, hasher PasswordHasher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		uow:       uow,
		hasher:    hasher,
		publisher: events.NopPublisher{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() time.Time {
	return internal.StartOfDay(s.now())
}

func (s *Service) load(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromDataModel(row), nil
}

func (s *Service) all(ctx context.Context) ([]*User, error) {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to get users from repository", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	users := make([]*User, 0, len(rows))
	for _, row := range rows {
		users = append(users, FromDataModel(row))
	}
	return users, nil
}

func sortByName(users []*User) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i], users[j]
		if c := strings.Compare(strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)); c != 0 {
			return c < 0
		}
		return strings.ToLower(a.LastName) < strings.ToLower(b.LastName)
	})
}

func (s *Service) profiles(users []*User) []ProfileDTO {
	today := s.today()
	out := make([]ProfileDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToProfileDTO(u, today))
	}
	return out
}

// ensureEmailAvailable fails with ErrEmailTaken when email belongs to a user other than self.
func (s *Service) ensureEmailAvailable(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != self {
		return internal.ErrEmailTaken
	}
	return nil
}

func (s *Service) ensureManager(ctx context.Context, managerID *uuid.UUID, self uuid.UUID) error {
	if managerID == nil {
		return nil
	}
	if *managerID == self {
		return internal.NewValidationFieldError("manager_id", "a user cannot be their own manager", internal.ErrCodeInvalidManager)
	}
	ok, err := s.repo.ExistsByID(ctx, *managerID)
	if err != nil {
		return fmt.Errorf("failed to check manager: %w", err)
	}
	if !ok {
		return internal.NewValidationFieldError("manager_id", "manager does not exist", internal.ErrCodeInvalidManager)
	}
	return nil
}

func (s *Service) emit(ctx context.Context, eventType string, id uuid.UUID, data map[string]interface{}) {
	events.Emit(ctx, s.publisher, s.logger, events.NewEvent(ctx, eventType, id, data))
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*ProfileDTO, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToProfileDTO(u, s.today())
	return &dto, nil
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) error {
	if err := dto.Validate(s.now()); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		u, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if err := s.ensureEmailAvailable(ctx, NormalizeEmail(dto.Email), id); err != nil {
			return err
		}
		dto.applyTo(u)
		return s.repo.Update(ctx, ToDataModel(u))
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user profile updated", "user_id", id)
	s.emit(ctx, events.EventTypeUserProfileUpdated, id, nil)
	return nil
}

// SetOutOfOffice marks the user away through endDate inclusive, or today when endDate is nil.
func (s *Service) SetOutOfOffice(ctx context.Context, id uuid.UUID, endDate *time.Time) error {
	today := s.today()
	end := today
	if endDate != nil {
		end = internal.StartOfDay(*endDate)
	}
	v := validation.NewValidator()
	v.Field("end_date", end).NotBefore(today, "end_date cannot be in the past")
	if err := v.Validate(); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		u, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		u.SetOutOfOfficeUntil(end, today)
		return s.repo.Update(ctx, ToDataModel(u))
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "out of office set", "user_id", id, "until", end.Format("2006-01-02"))
	s.emit(ctx, events.EventTypeUserOutOfOfficeSet, id, map[string]interface{}{"until": end.Format("2006-01-02")})
	return nil
}

func (s *Service) ClearOutOfOffice(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		u, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		u.ClearOutOfOffice()
		return s.repo.Update(ctx, ToDataModel(u))
	})
	if err != nil {
		return err
	}

	s.emit(ctx, events.EventTypeUserOutOfOfficeClear, id, nil)
	return nil
}

// GetOutOfOfficeUsers lists active users whose until-date covers day.
func (s *Service) GetOutOfOfficeUsers(ctx context.Context, day time.Time) ([]ProfileDTO, error) {
	users, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	var away []*User
	for _, u := range users {
		if u.IsActive && u.OutOfOfficeOn(day) {
			away = append(away, u)
		}
	}
	sortByName(away)
	return s.profiles(away), nil
}

func (s *Service) GetUsersWithBirthdayOn(ctx context.Context, day time.Time) ([]ProfileDTO, error) {
	users, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	var matched []*User
	for _, u := range users {
		if u.IsActive && u.HasBirthdayOn(day) {
			matched = append(matched, u)
		}
	}
	sortByName(matched)
	return s.profiles(matched), nil
}

func (s *Service) GetBirthdaysToday(ctx context.Context) ([]ProfileDTO, error) {
	return s.GetUsersWithBirthdayOn(ctx, s.today())
}

func (s *Service) GetBirthdaysTomorrow(ctx context.Context) ([]ProfileDTO, error) {
	return s.GetUsersWithBirthdayOn(ctx, s.today().AddDate(0, 0, 1))
}

// GetRecentUsers lists users created within the last days days, newest first.
func (s *Service) GetRecentUsers(ctx context.Context, days int) ([]ProfileDTO, error) {
	if days < 1 {
		return nil, internal.NewValidationFieldError("days", "days must be at least 1", internal.ErrCodeValidationFailed)
	}
	users, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.now().AddDate(0, 0, -days)
	var recent []*User
	for _, u := range users {
		if !u.CreatedAt.Before(cutoff) {
			recent = append(recent, u)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	return s.profiles(recent), nil
}

// GetDirectory lists active users who are in the office today.
func (s *Service) GetDirectory(ctx context.Context) ([]DirectoryUserDTO, error) {
	users, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	today := s.today()
	var present []*User
	for _, u := range users {
		if u.IsActive && !u.OutOfOfficeOn(today) {
			present = append(present, u)
		}
	}
	sortByName(present)
	out := make([]DirectoryUserDTO, 0, len(present))
	for _, u := range present {
		out = append(out, ToDirectoryUserDTO(u))
	}
	return out, nil
}

func (s *Service) ListAllUsers(ctx context.Context) ([]AdminUserListDTO, error) {
	users, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(users)
	out := make([]AdminUserListDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToAdminUserListDTO(u))
	}
	return out, nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*AdminUserDTO, error) {
	u, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToAdminUserDTO(u, s.today())
	return &dto, nil
}

func (s *Service) CreateUser(ctx context.Context, dto AdminCreateUserDTO) (*AdminUserDTO, error) {
	if err := dto.Validate(s.now()); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	u := &User{
		ID:           uuid.New(),
		Role:         dto.Role,
		ManagerID:    dto.ManagerID,
		IsActive:     dto.IsActive == nil || *dto.IsActive,
		PasswordHash: hash,
	}
	dto.UpdateProfileDTO.applyTo(u)

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailAvailable(ctx, u.Email, uuid.Nil); err != nil {
			return err
		}
		if err := s.ensureManager(ctx, u.ManagerID, u.ID); err != nil {
			return err
		}
		row := ToDataModel(u)
		if err := s.repo.Create(ctx, row); err != nil {
			return err
		}
		u.CreatedAt = row.CreatedAt
		u.UpdatedAt = row.UpdatedAt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "role", u.Role)
	s.emit(ctx, events.EventTypeUserCreated, u.ID, map[string]interface{}{"role": u.Role})

	created, err := s.GetUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) UpdateUser(ctx context.Context, id uuid.UUID, dto AdminUpdateUserDTO) error {
	if err := dto.Validate(s.now()); err != nil {
		return err
	}

	var hash string
	if dto.Password != nil && *dto.Password != "" {
		h, err := s.hasher.Hash(*dto.Password)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}
		hash = h
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		u, err := s.load(ctx, id)
		if err != nil {
			return err
		}
		if !strings.EqualFold(u.Email, NormalizeEmail(dto.Email)) {
			if err := s.ensureEmailAvailable(ctx, NormalizeEmail(dto.Email), id); err != nil {
				return err
			}
		}
		if err := s.ensureManager(ctx, dto.ManagerID, id); err != nil {
			return err
		}
		dto.UpdateProfileDTO.applyTo(u)
		u.Role = dto.Role
		u.ManagerID = dto.ManagerID
		u.IsActive = dto.IsActive == nil || *dto.IsActive
		if hash != "" {
			u.PasswordHash = hash
		}
		return s.repo.Update(ctx, ToDataModel(u))
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user updated", "user_id", id, "password_reset", hash != "")
	s.emit(ctx, events.EventTypeUserUpdated, id, map[string]interface{}{"password_reset": hash != ""})
	return nil
}

// DeleteUser removes a user. Direct reports lose their manager link in the same unit of work.
func (s *Service) DeleteUser(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID == id {
		return internal.ErrCannotDeleteSelf
	}

	err := s.uow.Do(ctx, func(ctx context.Context) error {
		ok, err := s.repo.ExistsByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check user: %w", err)
		}
		if !ok {
			return internal.ErrUserNotFound
		}
		if err := s.repo.ClearManager(ctx, id); err != nil {
			return fmt.Errorf("failed to detach direct reports: %w", err)
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted", "user_id", id, "actor_id", actorID)
	s.emit(ctx, events.EventTypeUserDeleted, id, nil)
	return nil
}
