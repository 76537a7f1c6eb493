package mtestimonial

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type Testimonial struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Occupation string    `json:"occupation"`
	Company    string    `json:"company"`
	Text       string    `json:"text"`
	AvatarURL  string    `json:"avatarUrl"`
	IsFeatured bool      `json:"isFeatured"`
	SortOrder  int64     `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (t Testimonial) GetID() int64        { return t.ID }
func (t Testimonial) GetSortOrder() int64 { return t.SortOrder }

func (t Testimonial) WithSortOrder(sortOrder int64) Testimonial {
	t.SortOrder = sortOrder
	return t
}

func (t Testimonial) Validate() error {
	var c mfield.Checker
	c.Required("name", t.Name)
	c.Required("text", t.Text)
	c.MaxLen("text", t.Text, 2000)
	c.URL("avatar_url", t.AvatarURL)
	return c.Err()
}
