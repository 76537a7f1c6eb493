package mexperience

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type Experience struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Period       string    `json:"period"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	CompanyURL   string    `json:"companyUrl"`
	SortOrder    int64     `json:"sortOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (e Experience) GetID() int64        { return e.ID }
func (e Experience) GetSortOrder() int64 { return e.SortOrder }

func (e Experience) WithSortOrder(sortOrder int64) Experience {
	e.SortOrder = sortOrder
	return e
}

func (e Experience) Validate() error {
	var c mfield.Checker
	c.Required("title", e.Title)
	c.Required("company", e.Company)
	c.URL("company_url", e.CompanyURL)
	return c.Err()
}
