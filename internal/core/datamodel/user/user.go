package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	Street  string `gorm:"column:street;size:200;not null"`
	City    string `gorm:"column:city;size:100;not null"`
	Country string `gorm:"column:country;size:100;not null"`
}

type User struct {
	ID               uuid.UUID  `gorm:"column:id;primaryKey;size:36"`
	FirstName        string     `gorm:"column:first_name;size:100;not null"`
	LastName         string     `gorm:"column:last_name;size:100;not null"`
	Email            string     `gorm:"column:email;size:200;uniqueIndex;not null"`
	Role             string     `gorm:"column:role;size:16;not null"`
	DateOfBirth      time.Time  `gorm:"column:date_of_birth;not null"`
	Skills           string     `gorm:"column:skills;size:500"`
	Address          Address    `gorm:"embedded;embeddedPrefix:address_"`
	Department       string     `gorm:"column:department;size:100"`
	CurrentProject   string     `gorm:"column:current_project;size:200"`
	IsOutOfOffice    bool       `gorm:"column:is_out_of_office;not null"`
	OutOfOfficeUntil *time.Time `gorm:"column:out_of_office_until"`
	IsActive         bool       `gorm:"column:is_active;not null"`
	ManagerID        *uuid.UUID `gorm:"column:manager_id;size:36"`
	Manager          *User      `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT"`
	PasswordHash     string     `gorm:"column:password_hash;not null"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
