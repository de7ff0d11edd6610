// Package bootstrap creates the first administrator and, on request, a set of
// synthetic users, notifications and links for local environments.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/companylink"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"github.com/frahmantamala/hrtool/internal/notification"
	"github.com/frahmantamala/hrtool/internal/user"
)

const (
	DefaultAdminEmail       = "admin@hrtool.local"
	DefaultTestUserCount    = 30
	DefaultTestUserPassword = "Test1234!"
	testNotificationCount   = 15
	testLinkCount           = 10
)

var ErrAdminPasswordMissing = errors.New("admin password must be set in HRTOOL_ADMIN_PASSWORD environment variable")

type PasswordHasher interface {
	Hash(password string) (string, error)
}

type Seeder struct {
	users         user.RepositoryAPI
	notifications notification.RepositoryAPI
	links         companylink.RepositoryAPI
	uow           internal.UnitOfWork
	hasher        PasswordHasher
	logger        *slog.Logger
	now           func() time.Time
}

func NewSeeder(users user.RepositoryAPI, notifications notification.RepositoryAPI, links companylink.RepositoryAPI, uow internal.UnitOfWork, hasher PasswordHasher, logger *slog.Logger) *Seeder {
	return &Seeder{
		users:         users,
		notifications: notifications,
		links:         links,
		uow:           uow,
		hasher:        hasher,
		logger:        logger,
		now:           time.Now,
	}
}

// SeedAdmin creates the administrator unless one already exists. A missing
// password is only an error when an admin actually has to be created.
func (s *Seeder) SeedAdmin(ctx context.Context, cfg internal.BootstrapConfig) error {
	admins, err := s.users.CountByRole(ctx, internal.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		s.logger.DebugContext(ctx, "admin already present, skipping seed", "admins", admins)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return ErrAdminPasswordMissing
	}

	email := user.NormalizeEmail(cfg.AdminEmail)
	if email == "" {
		email = DefaultAdminEmail
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("cannot seed admin: %s is already used by a non-admin account", email)
	} else if !errors.Is(err, internal.ErrUserNotFound) {
		return fmt.Errorf("look up admin email: %w", err)
	}

	hash, err := s.hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := s.now().UTC()
	admin := &userDatamodel.User{
		FirstName:    "Admin",
		LastName:     "User",
		Email:        email,
		Role:         internal.RoleAdmin,
		DateOfBirth:  internal.StartOfDay(now.AddDate(-30, 0, 0)),
		Department:   "IT",
		IsActive:     true,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.InfoContext(ctx, "admin account created", "user_id", admin.ID, "email", email)
	return nil
}

// SeedTestData fills an empty installation with synthetic records. It does
// nothing when non-admin users already exist.
func (s *Seeder) SeedTestData(ctx context.Context, cfg internal.BootstrapConfig) error {
	existing, err := s.users.CountByRole(ctx, internal.RoleUser)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		s.logger.InfoContext(ctx, "test data already present, skipping seed", "users", existing)
		return nil
	}

	count := cfg.TestUserCount
	if count <= 0 {
		count = DefaultTestUserCount
	}
	password := strings.TrimSpace(cfg.TestUserPassword)
	if password == "" {
		password = DefaultTestUserPassword
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash test user password: %w", err)
	}

	gen := newGenerator(s.now().UTC())
	err = s.uow.Do(ctx, func(ctx context.Context) error {
		users := make([]*userDatamodel.User, 0, count)
		for i := 0; i < count; i++ {
			u := gen.user(i, hash)
			if err := s.users.Create(ctx, u); err != nil {
				return fmt.Errorf("create test user %d: %w", i+1, err)
			}
			users = append(users, u)
		}

		for _, u := range users {
			if managerID, ok := gen.manager(u.ID, users); ok {
				u.ManagerID = &managerID
				if err := s.users.Update(ctx, u); err != nil {
					return fmt.Errorf("assign manager: %w", err)
				}
			}
		}

		for i := 0; i < testNotificationCount; i++ {
			if err := s.notifications.Create(ctx, gen.notification(i)); err != nil {
				return fmt.Errorf("create test notification: %w", err)
			}
		}
		for i := 0; i < testLinkCount; i++ {
			if err := s.links.Create(ctx, gen.link(i)); err != nil {
				return fmt.Errorf("create test link: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "test data seeded",
		"users", count,
		"notifications", testNotificationCount,
		"links", testLinkCount)
	return nil
}
