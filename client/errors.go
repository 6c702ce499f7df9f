package client

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a pipeline failure. Classification happens exactly once,
// inside the pipeline; callers only decide presentation.
type Kind int

const (
	// KindNetwork: no response reached the client. Recoverable by a manual
	// retry; never retried automatically.
	KindNetwork Kind = iota + 1
	// KindBusiness: the server processed the request and rejected it by
	// domain rule. Message is surfaced verbatim.
	KindBusiness
	// KindAuthentication: wrong credentials on the login endpoint. Not a
	// session event.
	KindAuthentication
	// KindSessionExpired: token rejected outside login; the session has
	// already been torn down by the time the caller sees this.
	KindSessionExpired
	KindForbidden
	KindNotFound
	KindValidation
	KindServer
)

// FieldError is one field-level issue from a 422 response.
type FieldError struct {
	Field   string
	Message string
}

// Error is a fully classified pipeline failure.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError

	// Handled is set when the pipeline itself already reported the failure
	// (logged it); presentation sites skip handled errors to avoid showing
	// the same failure twice.
	Handled bool

	cause error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return fmt.Sprintf("request failed (status %d)", e.Status)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// RenderFields joins field issues as "field: message; field: message".
func RenderFields(fields []FieldError) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, "; ")
}

// IsKind reports whether err is a pipeline failure of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func IsNetwork(err error) bool        { return IsKind(err, KindNetwork) }
func IsBusiness(err error) bool       { return IsKind(err, KindBusiness) }
func IsAuthentication(err error) bool { return IsKind(err, KindAuthentication) }
func IsSessionExpired(err error) bool { return IsKind(err, KindSessionExpired) }
func IsValidation(err error) bool     { return IsKind(err, KindValidation) }

// Fallback messages shown when the response body carries none, matching
// the portal UI's wording.
var fallbackMessages = map[Kind]string{
	KindNetwork:        "网络错误，请检查网络连接",
	KindBusiness:       "操作失败",
	KindAuthentication: "用户名或密码错误",
	KindSessionExpired: "未授权，请重新登录",
	KindForbidden:      "拒绝访问",
	KindNotFound:       "请求资源不存在",
	KindValidation:     "参数验证失败",
	KindServer:         "服务器错误",
}

func fallbackMessage(kind Kind) string {
	if msg, ok := fallbackMessages[kind]; ok {
		return msg
	}
	return "请求失败"
}
