package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/companylink"
	"github.com/frahmantamala/hrtool/internal/notification"
	"github.com/frahmantamala/hrtool/internal/user"
	"github.com/google/uuid"
)

// RecentUserDays is the window for the "new colleagues" panel.
const RecentUserDays = 30

type DashboardDTO struct {
	Greeting            string                         `json:"greeting"`
	Notifications       []notification.NotificationDTO `json:"notifications"`
	OutOfOfficeToday    []user.ProfileDTO              `json:"out_of_office_today"`
	OutOfOfficeTomorrow []user.ProfileDTO              `json:"out_of_office_tomorrow"`
	BirthdaysToday      []user.ProfileDTO              `json:"birthdays_today"`
	NewUsers            []user.ProfileDTO              `json:"new_users"`
	CompanyLinks        []companylink.CompanyLinkDTO   `json:"company_links"`
}

type UserReader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*user.ProfileDTO, error)
	GetOutOfOfficeUsers(ctx context.Context, day time.Time) ([]user.ProfileDTO, error)
	GetBirthdaysToday(ctx context.Context) ([]user.ProfileDTO, error)
	GetRecentUsers(ctx context.Context, days int) ([]user.ProfileDTO, error)
}

type NotificationReader interface {
	GetAll(ctx context.Context, onlyActive bool) ([]notification.NotificationDTO, error)
}

type LinkReader interface {
	GetAll(ctx context.Context) ([]companylink.CompanyLinkDTO, error)
}

type Service struct {
	users         UserReader
	notifications NotificationReader
	links         LinkReader
	logger        *slog.Logger
	now           func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(users UserReader, notifications NotificationReader, links LinkReader, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		users:         users,
		notifications: notifications,
		links:         links,
		logger:        logger,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func greeting(profile *user.ProfileDTO) string {
	if profile == nil || strings.TrimSpace(profile.FirstName) == "" {
		return "Good morning!"
	}
	return fmt.Sprintf("Good morning, %s!", profile.FirstName)
}

// GetDashboard assembles the landing page for userID. A missing profile only
// changes the greeting.
func (s *Service) GetDashboard(ctx context.Context, userID uuid.UUID) (*DashboardDTO, error) {
	profile, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, internal.ErrUserNotFound) {
			return nil, err
		}
		s.logger.WarnContext(ctx, "dashboard requested for unknown user", "user_id", userID)
		profile = nil
	}

	today := internal.StartOfDay(s.now())
	out := &DashboardDTO{Greeting: greeting(profile)}

	if out.Notifications, err = s.notifications.GetAll(ctx, true); err != nil {
		return nil, err
	}
	if out.OutOfOfficeToday, err = s.users.GetOutOfOfficeUsers(ctx, today); err != nil {
		return nil, err
	}
	if out.OutOfOfficeTomorrow, err = s.users.GetOutOfOfficeUsers(ctx, today.AddDate(0, 0, 1)); err != nil {
		return nil, err
	}
	if out.BirthdaysToday, err = s.users.GetBirthdaysToday(ctx); err != nil {
		return nil, err
	}
	if out.NewUsers, err = s.users.GetRecentUsers(ctx, RecentUserDays); err != nil {
		return nil, err
	}
	if out.CompanyLinks, err = s.links.GetAll(ctx); err != nil {
		return nil, err
	}
	return out, nil
}
