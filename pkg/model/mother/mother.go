package mother

import (
	"time"

	"github.com/the-dev-tools/folio/pkg/linkpreview"
	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

type ItemType string

const (
	TypeOther    ItemType = "other"
	TypeTool     ItemType = "tool"
	TypeResource ItemType = "resource"
	TypeTutorial ItemType = "tutorial"
	TypeTemplate ItemType = "template"
)

var itemTypes = []string{
	string(TypeOther), string(TypeTool), string(TypeResource), string(TypeTutorial), string(TypeTemplate),
}

// Item is an entry of the "others" section: tools, resources and similar links.
type Item struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	ItemType    ItemType  `json:"itemType"`
	SortOrder   int64     `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (i Item) GetID() int64        { return i.ID }
func (i Item) GetSortOrder() int64 { return i.SortOrder }

func (i Item) WithSortOrder(sortOrder int64) Item {
	i.SortOrder = sortOrder
	return i
}

func (i *Item) Normalize() {
	if i.ItemType == "" {
		i.ItemType = TypeOther
	}
}

func (i Item) Validate() error {
	var c mfield.Checker
	c.Required("title", i.Title)
	c.URL("link", i.Link)
	c.OneOf("item_type", string(i.ItemType), itemTypes...)
	return c.Err()
}

func (i Item) Preview() linkpreview.Preview {
	return linkpreview.Generate(i.Link, i.Title, i.Description, string(i.ItemType))
}
