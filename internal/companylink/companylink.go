package companylink

import (
	"strings"
	"time"

	"github.com/frahmantamala/hrtool/internal"
	"github.com/frahmantamala/hrtool/internal/core/common/validation"
	companylinkDatamodel "github.com/frahmantamala/hrtool/internal/core/datamodel/companylink"
	"github.com/google/uuid"
)

const (
	TitleMaxLength = 200
	URLMaxLength   = 500
)

type CompanyLinkDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// LinkInputDTO is the body for both create and update.
type LinkInputDTO struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (d LinkInputDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("title", strings.TrimSpace(d.Title)).Required().MaxLength(TitleMaxLength)
	v.Field("url", strings.TrimSpace(d.URL)).Required().MaxLength(URLMaxLength).HTTPURL()
	return v.Validate()
}

func (d LinkInputDTO) applyTo(row *companylinkDatamodel.CompanyLink) {
	row.Title = strings.TrimSpace(d.Title)
	row.URL = strings.TrimSpace(d.URL)
}

func ToCompanyLinkDTO(row *companylinkDatamodel.CompanyLink) CompanyLinkDTO {
	return CompanyLinkDTO{
		ID:        row.ID,
		Title:     row.Title,
		URL:       row.URL,
		CreatedAt: row.CreatedAt,
	}
}
