package graphql

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/saturnines/zero-e2e/pkg/errors"
)

// Location points into the document that caused an error.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is one entry of the response `errors` array.
type Error struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e Error) Error() string {
	return e.Message
}

// Errors is the `errors` array of a response.
type Errors []Error

func (es Errors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Response is one decoded `{data, errors}` envelope together with the HTTP
// status it arrived with.
type Response struct {
	Status int
	Data   map[string]json.RawMessage
	Errors Errors
}

type envelope struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors Errors                     `json:"errors"`
}

// decodeResponse parses a response body. An empty body yields an empty
// envelope; anything that is not a JSON object is an ErrHTTPResponse.
func decodeResponse(status int, body []byte) (*Response, error) {
	resp := &Response{Status: status}
	if len(bytes.TrimSpace(body)) == 0 {
		return resp, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, errors.WrapError(err, errors.ErrHTTPResponse, fmt.Sprintf("decode response (status %d)", status))
	}
	resp.Data = env.Data
	resp.Errors = env.Errors
	return resp, nil
}

// Has reports whether data.<op> is present and not null.
func (r *Response) Has(op string) bool {
	raw, ok := r.Data[op]
	return ok && !isNull(raw)
}

// Field returns the raw JSON of data.<op>, or nil when absent.
func (r *Response) Field(op string) json.RawMessage {
	if r == nil {
		return nil
	}
	return r.Data[op]
}

// Decode unmarshals data.<op> into v. A missing or null payload leaves v
// untouched and returns false.
func (r *Response) Decode(op string, v any) (bool, error) {
	raw := r.Field(op)
	if isNull(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, errors.WrapError(err, errors.ErrDecode, "decode data."+op)
	}
	return true, nil
}

// OK reports a 200 status with no GraphQL errors.
func (r *Response) OK() bool {
	return r.Status == 200 && len(r.Errors) == 0
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
