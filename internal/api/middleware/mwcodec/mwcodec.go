// Package mwcodec provides the JSON codec the RPC services speak.
package mwcodec

import (
	"fmt"

	"connectrpc.com/connect"
	json "github.com/goccy/go-json"
)

// jsonCodec marshals plain Go structs. Zero values are kept unless a field
// opts out with omitempty, so clients can rely on every key being present.
type jsonCodec struct {
	name string
}

var _ connect.Codec = (*jsonCodec)(nil)

func (c *jsonCodec) Name() string {
	return c.name
}

func (c *jsonCodec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("marshal %T: %w", msg, err))
	}
	return b, nil
}

// Unmarshal tolerates unknown fields for forward compatibility. An empty body
// leaves msg at its zero value.
func (c *jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}

func NewJSONCodec() connect.Codec {
	return &jsonCodec{name: "json"}
}

// WithJSONCodec returns a connect.Option that uses the custom JSON codec.
func WithJSONCodec() connect.HandlerOption {
	return connect.WithCodec(NewJSONCodec())
}

// WithJSONClientCodec is the client side counterpart of WithJSONCodec.
func WithJSONClientCodec() connect.ClientOption {
	return connect.WithCodec(NewJSONCodec())
}
