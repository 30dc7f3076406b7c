// Package api exposes the ledger services over Connect.
//
// Messages are plain Go structs carried by a JSON codec, so the handlers,
// clients and procedure names below stand in for generated code. Amounts
// travel as decimal strings, dates as YYYY-MM-DD or RFC3339 strings.
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// jsonCodec marshals messages with encoding/json. It replaces Connect's
// default "json" codec, which only accepts protobuf messages.
type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}

// WithJSON configures a handler or client to use the JSON codec.
func WithJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
