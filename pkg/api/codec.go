// Package api defines the tripbudget.v1 RPC messages together with Connect
// clients and handler constructors for them.
//
// Messages are plain Go structs carried as JSON. Use WithJSON on both the
// client and the handler side so Connect encodes them with the same codec.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// JSONCodec marshals RPC messages with encoding/json. It is registered under
// the "json" name, so requests use the application/json content type.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON configures a Connect client or handler to use JSONCodec.
func WithJSON() connect.Option {
	return connect.WithCodec(JSONCodec{})
}
