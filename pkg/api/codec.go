package api

import (
	"encoding/json"
	"errors"

	"connectrpc.com/connect"
)

// ErrorCodeHeader carries the ledger error code (e.g. ALREADY_VOID) on error
// responses.
const ErrorCodeHeader = "Ledger-Error-Code"

// Codec marshals messages as plain JSON. It replaces connect's default json
// codec, which only accepts protobuf messages.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}

// ErrorCode returns the ledger error code attached to a Connect error, or ""
// if err carries none.
func ErrorCode(err error) string {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	return connectErr.Meta().Get(ErrorCodeHeader)
}
