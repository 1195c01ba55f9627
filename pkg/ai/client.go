package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// previewLimit bounds the request/response excerpts attached to error
// diagnostics so oversized payloads never reach logs or job rows whole.
const previewLimit = 2048

// ErrorKind classifies a failed inference call.
type ErrorKind string

const (
	// ErrKindTransport covers connection failures and non-2xx statuses.
	ErrKindTransport ErrorKind = "transport"
	// ErrKindFormat covers 2xx bodies that are not valid JSON.
	ErrKindFormat ErrorKind = "format"
	// ErrKindApplication covers success:false envelopes inside a 2xx body.
	ErrKindApplication ErrorKind = "application"
	// ErrKindExtraction covers responses whose shape yields no text output.
	ErrKindExtraction ErrorKind = "extraction"
)

// Error is a classified inference failure carrying bounded diagnostic
// context for later persistence by the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int
	Request string
	Body    string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("ai %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("ai %s error: %s", e.Kind, e.Message)
}

// Details returns the structured diagnostic blob persisted alongside job
// errors.
func (e *Error) Details() map[string]interface{} {
	d := map[string]interface{}{
		"kind":            string(e.Kind),
		"request_preview": e.Request,
	}
	if e.Status != 0 {
		d["status"] = e.Status
	}
	if e.Body != "" {
		d["response_preview"] = e.Body
	}
	return d
}

type request struct {
	Model        string `json:"model"`
	Instructions string `json:"instructions"`
	Input        string `json:"input"`
}

type errorEnvelope struct {
	Success *bool `json:"success"`
	Errors  []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Response is the decoded 2xx payload of an inference call.
type Response struct {
	raw json.RawMessage
}

// Client is a single-call wrapper around the external inference service.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Run posts one inference request and classifies the outcome: non-2xx is a
// transport error, an unparseable 2xx body a format error, and an explicit
// success:false envelope an application error whose message comes from the
// first reported sub-error.
func (c *Client) Run(ctx context.Context, model, instructions, input string) (*Response, error) {
	payloadBytes, err := json.Marshal(request{
		Model:        model,
		Instructions: instructions,
		Input:        input,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	reqPreview := truncate(string(payloadBytes))

	url := c.baseURL + "/v1/responses"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    ErrKindTransport,
			Message: err.Error(),
			Request: reqPreview,
		}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			Kind:    ErrKindTransport,
			Message: fmt.Sprintf("read response: %v", err),
			Status:  resp.StatusCode,
			Request: reqPreview,
		}
	}
	bodyPreview := truncate(string(bodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Kind:    ErrKindTransport,
			Message: "unexpected HTTP status",
			Status:  resp.StatusCode,
			Request: reqPreview,
			Body:    bodyPreview,
		}
	}

	if !json.Valid(bodyBytes) {
		return nil, &Error{
			Kind:    ErrKindFormat,
			Message: "response body is not valid JSON",
			Status:  resp.StatusCode,
			Request: reqPreview,
			Body:    bodyPreview,
		}
	}

	// HTTP success can still carry an application-level failure envelope.
	var env errorEnvelope
	if err := json.Unmarshal(bodyBytes, &env); err == nil && env.Success != nil && !*env.Success {
		msg := "upstream reported failure"
		if len(env.Errors) > 0 && env.Errors[0].Message != "" {
			msg = env.Errors[0].Message
		}
		return nil, &Error{
			Kind:    ErrKindApplication,
			Message: msg,
			Status:  resp.StatusCode,
			Request: reqPreview,
			Body:    bodyPreview,
		}
	}

	return &Response{raw: json.RawMessage(bodyBytes)}, nil
}

func truncate(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "…(truncated)"
}
