package bootstrap

import (
	"fmt"
	"strings"
	"time"

	randomdata "github.com/Pallinder/go-randomdata"
	"github.com/frahmantamala/hrtool/internal"
	companylinkDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/companylink"
	notificationDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/notification"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"github.com/google/uuid"
)

var (
	departments = []string{"IT", "HR", "Finance", "Marketing", "Sales", "Support"}
	projects    = []string{"Apollo", "Hermes", "Orion", "Zeus", "Athena"}
	skills      = []string{"Go", "SQL", "Kubernetes", "React", "Excel", "Python", "Leadership", "Communication"}
)

// generator produces synthetic records relative to a fixed now.
type generator struct {
	now time.Time
}

func newGenerator(now time.Time) *generator {
	return &generator{now: now}
}

func (g *generator) skillList() string {
	n := randomdata.Number(2, 5)
	picked := make([]string, 0, n)
	seen := map[string]bool{}
	for len(picked) < n {
		s := randomdata.StringSample(skills...)
		if !seen[s] {
			seen[s] = true
			picked = append(picked, s)
		}
	}
	return strings.Join(picked, ", ")
}

func (g *generator) user(i int, passwordHash string) *userDatamodel.User {
	today := internal.StartOfDay(g.now)
	u := &userDatamodel.User{
		ID:        uuid.New(),
		FirstName: randomdata.FirstName(randomdata.RandomGender),
		LastName:  randomdata.LastName(),
		// Index-based addresses keep emails unique even when names repeat.
		Email:       fmt.Sprintf("test%d@hrtool.local", i+1),
		Role:        internal.RoleUser,
		DateOfBirth: today.AddDate(-randomdata.Number(22, 55), 0, randomdata.Number(0, 365)),
		Skills:      g.skillList(),
		Address: userDatamodel.Address{
			Street:  fmt.Sprintf("%d %s", randomdata.Number(1, 200), randomdata.Street()),
			City:    randomdata.City(),
			Country: randomdata.Country(randomdata.FullCountry),
		},
		Department:     randomdata.StringSample(departments...),
		CurrentProject: randomdata.StringSample(projects...),
		IsActive:       true,
		PasswordHash:   passwordHash,
		CreatedAt:      g.now.AddDate(0, 0, -randomdata.Number(0, 365)),
	}
	if u.DateOfBirth.After(today) {
		u.DateOfBirth = today.AddDate(-22, 0, 0)
	}
	// About one in ten is away for the next few days.
	if randomdata.Number(0, 10) == 0 {
		until := today.AddDate(0, 0, randomdata.Number(1, 10))
		u.IsOutOfOffice = true
		u.OutOfOfficeUntil = &until
	}
	return u
}

// manager picks another user as manager for roughly 70% of users.
func (g *generator) manager(self uuid.UUID, users []*userDatamodel.User) (uuid.UUID, bool) {
	if len(users) < 2 || randomdata.Number(0, 100) >= 70 {
		return uuid.Nil, false
	}
	for {
		candidate := users[randomdata.Number(0, len(users))]
		if candidate.ID != self {
			return candidate.ID, true
		}
	}
}

func (g *generator) notification(i int) *notificationDatamodel.Notification {
	expiry := internal.StartOfDay(g.now).AddDate(0, 0, randomdata.Number(5, 60))
	return &notificationDatamodel.Notification{
		ID:         uuid.New(),
		Title:      fmt.Sprintf("Test Notification %d", i+1),
		Message:    fmt.Sprintf("Reminder about the %s %s. %s", randomdata.Adjective(), randomdata.Noun(), randomdata.SillyName()),
		ExpiryDate: &expiry,
		IsActive:   randomdata.Number(0, 10) < 8,
	}
}

func (g *generator) link(i int) *companylinkDatamodel.CompanyLink {
	return &companylinkDatamodel.CompanyLink{
		ID:    uuid.New(),
		Title: fmt.Sprintf("Resource %d: %s", i+1, randomdata.SillyName()),
		URL:   fmt.Sprintf("https://company.resource/%d", i+1),
	}
}
