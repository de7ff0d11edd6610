package user

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	userDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/user"
	"github.com/google/uuid"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func (a Address) Trimmed() Address {
	return Address{
		Street:  strings.TrimSpace(a.Street),
		City:    strings.TrimSpace(a.City),
		Country: strings.TrimSpace(a.Country),
	}
}

type User struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	Email            string
	Role             string
	DateOfBirth      time.Time
	Skills           string
	Address          Address
	Department       string
	CurrentProject   string
	IsOutOfOffice    bool
	OutOfOfficeUntil *time.Time
	IsActive         bool
	ManagerID        *uuid.UUID
	ManagerName      string
	PasswordHash     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// OutOfOfficeOn reports whether the until-date covers day. The stored flag is
// ignored because it goes stale once the until-date has passed.
func (u *User) OutOfOfficeOn(day time.Time) bool {
	if u.OutOfOfficeUntil == nil {
		return false
	}
	return !internal.StartOfDay(*u.OutOfOfficeUntil).Before(internal.StartOfDay(day))
}

// HasBirthdayOn compares month and day. A 29 February birthday falls on
// 28 February in non-leap years.
func (u *User) HasBirthdayOn(day time.Time) bool {
	if u.DateOfBirth.IsZero() {
		return false
	}
	_, bm, bd := u.DateOfBirth.UTC().Date()
	y, m, d := day.UTC().Date()
	if bm == time.February && bd == 29 && !isLeap(y) {
		return m == time.February && d == 28
	}
	return bm == m && bd == d
}

func (u *User) SetOutOfOfficeUntil(until, today time.Time) {
	day := internal.StartOfDay(until)
	u.OutOfOfficeUntil = &day
	u.IsOutOfOffice = !day.Before(internal.StartOfDay(today))
}

func (u *User) ClearOutOfOffice() {
	u.OutOfOfficeUntil = nil
	u.IsOutOfOffice = false
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// NormalizeEmail is the stored and compared form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		DateOfBirth: u.DateOfBirth,
		Skills:      u.Skills,
		Address: userDatamodel.Address{
			Street:  u.Address.Street,
			City:    u.Address.City,
			Country: u.Address.Country,
		},
		Department:       u.Department,
		CurrentProject:   u.CurrentProject,
		IsOutOfOffice:    u.IsOutOfOffice,
		OutOfOfficeUntil: u.OutOfOfficeUntil,
		IsActive:         u.IsActive,
		ManagerID:        u.ManagerID,
		PasswordHash:     u.PasswordHash,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	out := &User{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		DateOfBirth: u.DateOfBirth,
		Skills:      u.Skills,
		Address: Address{
			Street:  u.Address.Street,
			City:    u.Address.City,
			Country: u.Address.Country,
		},
		Department:       u.Department,
		CurrentProject:   u.CurrentProject,
		IsOutOfOffice:    u.IsOutOfOffice,
		OutOfOfficeUntil: u.OutOfOfficeUntil,
		IsActive:         u.IsActive,
		ManagerID:        u.ManagerID,
		PasswordHash:     u.PasswordHash,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
	if u.Manager != nil {
		out.ManagerName = strings.TrimSpace(u.Manager.FirstName + " " + u.Manager.LastName)
	}
	return out
}
