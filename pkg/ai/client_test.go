package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-key"), srv
}

func TestRunSuccess(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/responses" {
			t.Errorf("path = %s, want /v1/responses", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		w.Write([]byte(`{"output":[{"type":"message","content":[{"type":"output_text","text":"{\"tags\":[\"work\"]}"}]}]}`))
	})
	defer srv.Close()

	resp, err := client.Run(context.Background(), "test-model", "instr", "input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := ExtractText(resp)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(text, "work") {
		t.Errorf("text = %q", text)
	}
}

func TestRunTransportError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	})
	defer srv.Close()

	_, err := client.Run(context.Background(), "m", "i", "x")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if aiErr.Kind != ErrKindTransport {
		t.Errorf("Kind = %s, want transport", aiErr.Kind)
	}
	if aiErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d", aiErr.Status)
	}
	if aiErr.Body == "" {
		t.Error("expected response preview in error")
	}
}

func TestRunConnectionRefused(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "")
	_, err := client.Run(context.Background(), "m", "i", "x")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if aiErr.Kind != ErrKindTransport {
		t.Errorf("Kind = %s, want transport", aiErr.Kind)
	}
}

func TestRunFormatError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	})
	defer srv.Close()

	_, err := client.Run(context.Background(), "m", "i", "x")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if aiErr.Kind != ErrKindFormat {
		t.Errorf("Kind = %s, want format", aiErr.Kind)
	}
}

func TestRunApplicationError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"errors":[{"message":"model overloaded"}]}`))
	})
	defer srv.Close()

	_, err := client.Run(context.Background(), "m", "i", "x")
	var aiErr *Error
	if !errors.As(err, &aiErr) {
		t.Fatalf("want *Error, got %v", err)
	}
	if aiErr.Kind != ErrKindApplication {
		t.Errorf("Kind = %s, want application", aiErr.Kind)
	}
	if !strings.Contains(aiErr.Message, "model overloaded") {
		t.Errorf("Message = %q", aiErr.Message)
	}
}

func TestRunSuccessTrueEnvelopePasses(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"text":"hello"}`))
	})
	defer srv.Close()

	resp, err := client.Run(context.Background(), "m", "i", "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := ExtractText(resp)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "hello" {
		t.Errorf("text = %q", text)
	}
}

func TestExtractTextShapes(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"bare string", `"plain"`, "plain", false},
		{"text field", `{"text":"from field"}`, "from field", false},
		{
			"structured output",
			`{"output":[{"type":"reasoning"},{"type":"message","content":[{"type":"refusal"},{"type":"output_text","text":"deep"}]}]}`,
			"deep",
			false,
		},
		{"no text shape", `{"foo":1}`, "", true},
		{"empty output array", `{"output":[]}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(&Response{raw: []byte(tt.raw)})
			if tt.wantErr {
				var aiErr *Error
				if !errors.As(err, &aiErr) || aiErr.Kind != ErrKindExtraction {
					t.Fatalf("want extraction error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorDetailsTruncation(t *testing.T) {
	long := strings.Repeat("x", previewLimit+100)
	if got := truncate(long); len(got) <= previewLimit {
		// preview keeps a truncation marker past the limit
		t.Errorf("len = %d", len(got))
	} else if !strings.HasSuffix(got, "(truncated)") {
		t.Errorf("missing truncation marker: %q", got[len(got)-20:])
	}

	e := &Error{Kind: ErrKindTransport, Status: 500, Request: "req", Body: "body"}
	d := e.Details()
	if d["kind"] != "transport" || d["status"] != 500 {
		t.Errorf("Details = %v", d)
	}
}
