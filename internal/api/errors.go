package api

import (
	"encoding/json"
	"fmt"
)

// StatusError is a structured server rejection (any non-2xx response that is
// not the distinguished limit case). Detail carries the server's message when
// one was provided.
type StatusError struct {
	Status int
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// LimitReachedError is the one distinguished rejection: a 403 whose body
// carries the view_limit_reached marker. Callers branch on it to open the
// upgrade surface instead of showing a bare error.
type LimitReachedError struct {
	Message    string
	ViewsUsed  int
	ViewsLimit int
}

func (e *LimitReachedError) Error() string {
	if e.Message != "" {
		return "api: view limit reached: " + e.Message
	}
	return "api: view limit reached"
}

// errorBody matches the FastAPI error shape, where detail is either a plain
// string or an object with marker fields.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	ViewsUsed  int    `json:"views_used"`
	ViewsLimit int    `json:"views_limit"`
}

// classify turns a non-2xx response body into a typed error.
func classify(status int, body []byte) error {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return &StatusError{Status: status}
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return &StatusError{Status: status, Detail: s}
	}

	var d errorDetail
	if err := json.Unmarshal(eb.Detail, &d); err == nil {
		if status == 403 && d.Error == "view_limit_reached" {
			return &LimitReachedError{
				Message:    d.Message,
				ViewsUsed:  d.ViewsUsed,
				ViewsLimit: d.ViewsLimit,
			}
		}
		return &StatusError{Status: status, Detail: d.Message}
	}

	return &StatusError{Status: status}
}
