package radmin

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/the-dev-tools/folio/pkg/fuzzyfinder"
	"github.com/the-dev-tools/folio/pkg/movable"
)

// resource is the JSON facing CRUD surface of one ordered collection.
type resource interface {
	List(ctx context.Context, query string) ([]json.RawMessage, error)
	Get(ctx context.Context, id int64) (json.RawMessage, error)
	Create(ctx context.Context, raw json.RawMessage) (int64, json.RawMessage, error)
	Update(ctx context.Context, id int64, raw json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, id int64) (int, error)
}

// crud adapts a typed entity service to resource.
type crud[T movable.Record[T]] struct {
	list   func(context.Context) ([]T, error)
	get    func(context.Context, int64) (T, error)
	create func(context.Context, T) (T, error)
	update func(context.Context, T) (T, error)
	remove func(context.Context, int64) (int, error)
	// label is what the fuzzy query matches against.
	label func(T) string
	// withID returns a copy of the decoded entity carrying id.
	withID func(T, int64) T
}

var _ resource = crud[movable.Entry]{}

func (c crud[T]) List(ctx context.Context, query string) ([]json.RawMessage, error) {
	items, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	if query != "" {
		items = fuzzyfinder.Filter(items, query, c.label)
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		raw, err := encode(item)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func (c crud[T]) Get(ctx context.Context, id int64) (json.RawMessage, error) {
	item, err := c.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return encode(item)
}

// Create returns the id assigned to the new record along with its JSON.
func (c crud[T]) Create(ctx context.Context, raw json.RawMessage) (int64, json.RawMessage, error) {
	item, err := decode[T](raw)
	if err != nil {
		return 0, nil, err
	}
	created, err := c.create(ctx, c.withID(item, 0))
	if err != nil {
		return 0, nil, err
	}
	out, err := encode(created)
	if err != nil {
		return 0, nil, err
	}
	return created.GetID(), out, nil
}

// Update replaces the fields of id. Any sort order in raw is ignored, order
// only changes through a reorder session.
func (c crud[T]) Update(ctx context.Context, id int64, raw json.RawMessage) (json.RawMessage, error) {
	item, err := decode[T](raw)
	if err != nil {
		return nil, err
	}
	updated, err := c.update(ctx, c.withID(item, id))
	if err != nil {
		return nil, err
	}
	return encode(updated)
}

func (c crud[T]) Delete(ctx context.Context, id int64) (int, error) {
	return c.remove(ctx, id)
}

func decode[T any](raw json.RawMessage) (T, error) {
	var item T
	if len(raw) == 0 {
		return item, fmt.Errorf("%w: item is required", movable.ErrValidation)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("%w: decode item: %w", movable.ErrValidation, err)
	}
	return item, nil
}

func encode(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}
