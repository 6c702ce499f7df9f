package models

import "encoding/json"

// Response is the portal's unified envelope. Every endpoint wraps its
// payload in it; Data stays raw until the caller decodes it.
type Response struct {
	Success bool            `json:"success"`
	Code    int             `json:"code,omitempty"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ErrorBody carries the failure fields the backend attaches on non-2xx
// responses. Detail is either a plain string or a list of field issues.
type ErrorBody struct {
	Message string          `json:"message,omitempty"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// FieldIssue is one entry of a 422 validation detail list. Loc mixes
// strings and array indices, e.g. ["body", "password"].
type FieldIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}
