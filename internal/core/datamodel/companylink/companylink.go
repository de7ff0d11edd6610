package companylink

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyLink struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey;size:36"`
	Title     string    `gorm:"column:title;size:200;not null"`
	URL       string    `gorm:"column:url;size:500;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CompanyLink) TableName() string {
	return "company_links"
}

func (c *CompanyLink) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
