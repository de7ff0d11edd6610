package user

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/dates"
	"github.com/frahmantamala/hrtool/internal/core/common/validation"
	"github.com/google/uuid"
)

const (
	PasswordMinLength = 6
	PasswordMaxLength = 100
	DefaultRecentDays = 30
)

// ProfileDTO is the user view shared by self-service, listings and the dashboard.
type ProfileDTO struct {
	ID               uuid.UUID   `json:"id"`
	FirstName        string      `json:"first_name"`
	LastName         string      `json:"last_name"`
	Email            string      `json:"email"`
	DateOfBirth      dates.Date  `json:"date_of_birth"`
	Skills           string      `json:"skills"`
	Address          Address     `json:"address"`
	Department       string      `json:"department"`
	CurrentProject   string      `json:"current_project"`
	ManagerName      *string     `json:"manager_name"`
	IsOutOfOffice    bool        `json:"is_out_of_office"`
	OutOfOfficeUntil *dates.Date `json:"out_of_office_until,omitempty"`
}

type DirectoryUserDTO struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	City       string `json:"city"`
	Country    string `json:"country"`
}

type AdminUserListDTO struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	Department  string    `json:"department"`
	ManagerName *string   `json:"manager_name"`
	IsActive    bool      `json:"is_active"`
}

type AdminUserDTO struct {
	ProfileDTO
	Role      string     `json:"role"`
	ManagerID *uuid.UUID `json:"manager_id"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

type UpdateProfileDTO struct {
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	DateOfBirth    dates.Date `json:"date_of_birth"`
	Skills         string     `json:"skills"`
	Address        Address    `json:"address"`
	Department     string     `json:"department"`
	CurrentProject string     `json:"current_project"`
}

type SetOutOfOfficeDTO struct {
	EndDate *dates.Date `json:"end_date"`
}

type AdminCreateUserDTO struct {
	UpdateProfileDTO
	Role      string     `json:"role"`
	ManagerID *uuid.UUID `json:"manager_id"`
	Password  string     `json:"password"`
	IsActive  *bool      `json:"is_active"`
}

type AdminUpdateUserDTO struct {
	UpdateProfileDTO
	Role      string     `json:"role"`
	ManagerID *uuid.UUID `json:"manager_id"`
	Password  *string    `json:"password"`
	IsActive  *bool      `json:"is_active"`
}

func (d UpdateProfileDTO) addRules(v *validation.ValidationBuilder, now time.Time) {
	v.Field("first_name", strings.TrimSpace(d.FirstName)).Required().MaxLength(100)
	v.Field("last_name", strings.TrimSpace(d.LastName)).Required().MaxLength(100)
	v.Field("email", strings.TrimSpace(d.Email)).Required().Email().MaxLength(200)
	v.Field("date_of_birth", d.DateOfBirth.Time).Required().NotAfter(now)
	v.Field("skills", strings.TrimSpace(d.Skills)).MaxLength(500)
	v.Field("address.street", strings.TrimSpace(d.Address.Street)).MaxLength(200)
	v.Field("address.city", strings.TrimSpace(d.Address.City)).MaxLength(100)
	v.Field("address.country", strings.TrimSpace(d.Address.Country)).MaxLength(100)
	v.Field("department", strings.TrimSpace(d.Department)).MaxLength(100)
	v.Field("current_project", strings.TrimSpace(d.CurrentProject)).MaxLength(200)
}

func (d UpdateProfileDTO) Validate(now time.Time) *internal.AppError {
	v := validation.NewValidator()
	d.addRules(v, now)
	return v.Validate()
}

func (d AdminCreateUserDTO) Validate(now time.Time) *internal.AppError {
	v := validation.NewValidator()
	d.UpdateProfileDTO.addRules(v, now)
	v.Field("role", d.Role).Required().OneOf(internal.ErrCodeInvalidRole, internal.RoleAdmin, internal.RoleUser)
	v.Field("password", d.Password).Required().MinLength(PasswordMinLength).MaxLength(PasswordMaxLength)
	return v.Validate()
}

func (d AdminUpdateUserDTO) Validate(now time.Time) *internal.AppError {
	v := validation.NewValidator()
	d.UpdateProfileDTO.addRules(v, now)
	v.Field("role", d.Role).Required().OneOf(internal.ErrCodeInvalidRole, internal.RoleAdmin, internal.RoleUser)
	if d.Password != nil && *d.Password != "" {
		v.Field("password", *d.Password).MinLength(PasswordMinLength).MaxLength(PasswordMaxLength)
	}
	return v.Validate()
}

// applyTo overwrites the editable profile fields with trimmed values.
func (d UpdateProfileDTO) applyTo(u *User) {
	u.FirstName = strings.TrimSpace(d.FirstName)
	u.LastName = strings.TrimSpace(d.LastName)
	u.Email = NormalizeEmail(d.Email)
	u.DateOfBirth = d.DateOfBirth.Time
	u.Skills = strings.TrimSpace(d.Skills)
	u.Address = d.Address.Trimmed()
	u.Department = strings.TrimSpace(d.Department)
	u.CurrentProject = strings.TrimSpace(d.CurrentProject)
}

func managerName(u *User) *string {
	if u.ManagerName == "" {
		return nil
	}
	name := u.ManagerName
	return &name
}

func ToProfileDTO(u *User, today time.Time) ProfileDTO {
	dto := ProfileDTO{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		DateOfBirth:    dates.NewDate(u.DateOfBirth),
		Skills:         u.Skills,
		Address:        u.Address,
		Department:     u.Department,
		CurrentProject: u.CurrentProject,
		ManagerName:    managerName(u),
		IsOutOfOffice:  u.OutOfOfficeOn(today),
	}
	if u.OutOfOfficeUntil != nil {
		until := dates.NewDate(*u.OutOfOfficeUntil)
		dto.OutOfOfficeUntil = &until
	}
	return dto
}

func ToDirectoryUserDTO(u *User) DirectoryUserDTO {
	return DirectoryUserDTO{
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		Department: u.Department,
		City:       u.Address.City,
		Country:    u.Address.Country,
	}
}

func ToAdminUserListDTO(u *User) AdminUserListDTO {
	return AdminUserListDTO{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		Department:  u.Department,
		ManagerName: managerName(u),
		IsActive:    u.IsActive,
	}
}

func ToAdminUserDTO(u *User, today time.Time) AdminUserDTO {
	return AdminUserDTO{
		ProfileDTO: ToProfileDTO(u, today),
		Role:       u.Role,
		ManagerID:  u.ManagerID,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}
