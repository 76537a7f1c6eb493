package mfunfact

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type FunFact struct {
	ID        int64     `json:"id"`
	FactText  string    `json:"factText"`
	IsActive  bool      `json:"isActive"`
	SortOrder int64     `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f FunFact) GetID() int64        { return f.ID }
func (f FunFact) GetSortOrder() int64 { return f.SortOrder }

func (f FunFact) WithSortOrder(sortOrder int64) FunFact {
	f.SortOrder = sortOrder
	return f
}

func (f FunFact) Validate() error {
	var c mfield.Checker
	c.Required("fact_text", f.FactText)
	c.MaxLen("fact_text", f.FactText, 500)
	return c.Err()
}
