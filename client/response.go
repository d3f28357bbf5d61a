package client

import "encoding/json"

// Response is the normalized result of a dispatched request: the status code
// plus the raw JSON body. The pipeline keeps no reference to it after
// returning.
type Response struct {
	Status int
	Body   json.RawMessage
}

// Decode unmarshals the response body into v. An empty body decodes into
// nothing and returns a DecodeError.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return &DecodeError{Status: r.Status, Err: errEmptyBody}
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &DecodeError{Status: r.Status, Err: err, Body: r.Body}
	}
	return nil
}
