package movable

import (
	"fmt"
	"strings"
)

// Collection is the name of an ordered table.
type Collection string

const (
	CollectionProjects     Collection = "projects"
	CollectionExperiences  Collection = "experiences"
	CollectionSkills       Collection = "skills"
	CollectionTestimonials Collection = "testimonials"
	CollectionTechStack    Collection = "tech_stack"
	CollectionFunFacts     Collection = "fun_facts"
	CollectionOthers       Collection = "others"
)

func (c Collection) String() string {
	return string(c)
}

// QueryConfig describes how a collection maps onto its table. Only configs from
// the registry below are ever interpolated into SQL.
type QueryConfig struct {
	TableName      string
	IDColumn       string
	PositionColumn string
	// LabelExpr is a SQL expression producing the display label.
	LabelExpr string
}

var registry = map[Collection]QueryConfig{
	CollectionProjects:     {TableName: "projects", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "title"},
	CollectionExperiences:  {TableName: "experiences", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "title || ' @ ' || company"},
	CollectionSkills:       {TableName: "skills", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "category"},
	CollectionTestimonials: {TableName: "testimonials", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "name"},
	CollectionTechStack:    {TableName: "tech_stack", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "tech_name"},
	CollectionFunFacts:     {TableName: "fun_facts", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "fact_text"},
	CollectionOthers:       {TableName: "others", IDColumn: "id", PositionColumn: "sort_order", LabelExpr: "title"},
}

// Collections lists every ordered collection in a stable order.
func Collections() []Collection {
	return []Collection{
		CollectionProjects,
		CollectionExperiences,
		CollectionSkills,
		CollectionTestimonials,
		CollectionTechStack,
		CollectionFunFacts,
		CollectionOthers,
	}
}

// ParseCollection accepts table names and their dashed forms ("tech-stack").
func ParseCollection(s string) (Collection, error) {
	c := Collection(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := registry[c]; !ok {
		return "", fmt.Errorf("%w: %w %q", ErrValidation, ErrUnknownCollection, s)
	}
	return c, nil
}

func (c Collection) config() (QueryConfig, error) {
	cfg, ok := registry[c]
	if !ok {
		return QueryConfig{}, fmt.Errorf("%w: %w %q", ErrValidation, ErrUnknownCollection, string(c))
	}
	return cfg, nil
}
