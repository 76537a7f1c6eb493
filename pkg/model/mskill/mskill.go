package mskill

import (
	"slices"
	"strings"
	"time"

	"github.com/the-dev-tools/folio/pkg/model/mfield"
)

// Skill is one category of skills. Lists are stored comma separated.
type Skill struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Skills      []string  `json:"skills"`
	Highlighted []string  `json:"highlighted"`
	SortOrder   int64     `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Tag is a skill with its highlight flag, the shape the public page renders.
type Tag struct {
	Name        string `json:"name"`
	Highlighted bool   `json:"highlighted"`
}

func (s Skill) GetID() int64        { return s.ID }
func (s Skill) GetSortOrder() int64 { return s.SortOrder }

func (s Skill) WithSortOrder(sortOrder int64) Skill {
	s.SortOrder = sortOrder
	return s
}

func (s Skill) IsHighlighted(name string) bool {
	return slices.ContainsFunc(s.Highlighted, func(h string) bool {
		return strings.EqualFold(h, name)
	})
}

func (s Skill) Tags() []Tag {
	tags := make([]Tag, 0, len(s.Skills))
	for _, name := range s.Skills {
		tags = append(tags, Tag{Name: name, Highlighted: s.IsHighlighted(name)})
	}
	return tags
}

func (s Skill) Validate() error {
	var c mfield.Checker
	c.Required("category", s.Category)
	if len(s.Skills) == 0 {
		c.Required("skill_list", "")
	}
	return c.Err()
}

// Parse builds the lists from their stored comma separated form.
func Parse(skillList, highlighted string) ([]string, []string) {
	return mfield.SplitList(skillList), mfield.SplitList(highlighted)
}
