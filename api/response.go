package api

import (
	"encoding/json"
	"net/http"
)

// Synthetic statuses produced by normalization. Negative on purpose so they
// can never collide with a real HTTP status.
const (
	StatusNetworkFailure = -1
	StatusRequestFailure = -404
)

// Response is the one shape every call returns, whatever happened on the
// wire. Callers check OK() and read Err; they never see a transport error.
type Response struct {
	Status int
	Body   []byte
	Err    string
}

func (r Response) OK() bool {
	return r.Status == http.StatusOK
}

// Decode unmarshals the response body into v.
func (r Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}
