package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
)

func logEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	return entry
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantLevel string
	}{
		{name: "ok", wantMsg: "RPC ok", wantLevel: "INFO"},
		{name: "connect error", err: connect.NewError(connect.CodeNotFound, errors.New("no todo item")), wantMsg: "RPC error", wantLevel: "WARN"},
		{name: "plain error", err: errors.New("boom"), wantMsg: "RPC error", wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				return nil, tt.err
			}
			ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")

			_, err := LoggingInterceptor(logger)(next)(ctx, connect.NewRequest(&struct{}{}))
			if !errors.Is(err, tt.err) {
				t.Errorf("expected error %v to pass through, got %v", tt.err, err)
			}

			entry := logEntry(t, &buf)
			if entry["msg"] != tt.wantMsg || entry["level"] != tt.wantLevel {
				t.Errorf("unexpected entry: %v", entry)
			}
			if entry["request_id"] != "req-42" {
				t.Errorf("request_id: got %v, want req-42", entry["request_id"])
			}
		})
	}
}

func TestLoggingInterceptorCode(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	next := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("either title or id is required"))
	}
	LoggingInterceptor(logger)(next)(context.Background(), connect.NewRequest(&struct{}{}))

	if code := logEntry(t, &buf)["code"]; code != connect.CodeInvalidArgument.String() {
		t.Errorf("code: got %v, want %s", code, connect.CodeInvalidArgument)
	}
}
