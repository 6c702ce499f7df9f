// Package client is the portal request pipeline: it attaches credentials to
// every outbound call, unwraps the response envelope, and classifies every
// failure exactly once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lucky-sheltered-boy/BUAA-database-2025/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// loginPath identifies the one endpoint whose 401 means "wrong credentials"
// rather than "session expired".
const loginPath = "/auth/login"

// CredentialSource supplies the current access token. An empty token means
// the session is logged out and no Authorization header is attached.
type CredentialSource interface {
	AccessToken() string
}

// Client dispatches portal requests. Bind a session with BindSession before
// issuing authenticated calls.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	limiter *rate.Limiter

	creds          CredentialSource
	onUnauthorized func()
}

// New builds a pipeline for the given API base URL with a bounded request
// timeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetRateLimit throttles outbound requests to rps requests per second.
// Zero or negative disables throttling.
func (c *Client) SetRateLimit(rps float64) {
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	} else {
		c.limiter = nil
	}
}

// BindSession wires the session that supplies tokens and absorbs forced
// logouts. Bound after construction because the session itself dispatches
// its login and refresh calls through this client.
func (c *Client) BindSession(creds CredentialSource, onUnauthorized func()) {
	c.creds = creds
	c.onUnauthorized = onUnauthorized
}

// Get issues a GET and decodes the envelope payload into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body and decodes the envelope payload into
// out (may be nil).
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return &Error{Kind: KindNetwork, Message: fallbackMessage(KindNetwork), cause: err}
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.creds != nil {
		if token := c.creds.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed before a response was reached",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &Error{Kind: KindNetwork, Message: fallbackMessage(KindNetwork), cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fallbackMessage(KindNetwork), cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classifyStatus(resp.StatusCode, path, raw)
	}

	var envelope models.Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode response envelope: %w", err)
	}
	if !envelope.Success {
		message := envelope.Message
		if message == "" {
			message = fallbackMessage(KindBusiness)
		}
		return &Error{Kind: KindBusiness, Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode response payload: %w", err)
		}
	}
	return nil
}

// classifyStatus maps a non-2xx response to the error taxonomy. The one
// side effect lives here: a 401 outside the login endpoint tears the
// session down before the error is returned.
func (c *Client) classifyStatus(status int, path string, raw []byte) error {
	message, fields := extractDetail(status, raw)

	var kind Kind
	switch status {
	case http.StatusUnauthorized:
		if strings.Contains(path, loginPath) {
			kind = KindAuthentication
		} else {
			kind = KindSessionExpired
			message = fallbackMessage(kind)
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		}
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusUnprocessableEntity:
		kind = KindValidation
	case http.StatusInternalServerError:
		kind = KindServer
	default:
		kind = KindServer
	}
	if message == "" {
		message = fallbackMessage(kind)
	}

	c.logger.Warn("request rejected",
		zap.Int("status", status), zap.String("path", path), zap.String("message", message))

	return &Error{Kind: kind, Status: status, Message: message, Fields: fields, Handled: true}
}

// extractDetail pulls a human-readable message out of an error body. For
// 422 responses with a field issue list, each issue renders as
// "field: message" joined with "; ", the field being the last loc element.
func extractDetail(status int, raw []byte) (string, []FieldError) {
	var body models.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", nil
	}

	if status == http.StatusUnprocessableEntity && len(body.Detail) > 0 {
		var issues []models.FieldIssue
		if err := json.Unmarshal(body.Detail, &issues); err == nil {
			fields := make([]FieldError, 0, len(issues))
			for _, issue := range issues {
				field := ""
				if n := len(issue.Loc); n > 0 {
					field = fmt.Sprint(issue.Loc[n-1])
				}
				fields = append(fields, FieldError{Field: field, Message: issue.Msg})
			}
			return RenderFields(fields), fields
		}
	}

	if body.Message != "" {
		return body.Message, nil
	}
	var detail string
	if len(body.Detail) > 0 {
		if err := json.Unmarshal(body.Detail, &detail); err == nil {
			return detail, nil
		}
	}
	return "", nil
}
