package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/gameochtend/internal/auth"
	"github.com/mmynk/gameochtend/internal/models"
)

type ping struct{}

// capture returns a handler that records the user id it was called with.
func capture(userID *string, called *bool) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*called = true
		*userID = GetUserID(ctx)
		return connect.NewResponse(&ping{}), nil
	}
}

func requestWith(header string) *connect.Request[ping] {
	req := connect.NewRequest(&ping{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	alice := models.UserProfile{UserID: "alice@example.com", Name: "Alice"}
	token, err := jwtManager.Generate(alice)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	other := auth.NewJWTManager("other-secret", time.Hour)
	forged, _ := other.Generate(alice)

	tests := []struct {
		name     string
		header   string
		wantUser string
		wantErr  bool
	}{
		{"valid token", "Bearer " + token, "alice@example.com", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic " + token, "", true},
		{"empty token", "Bearer ", "", true},
		{"foreign signature", "Bearer " + forged, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var userID string
			var called bool
			_, err := RequireAuth(jwtManager)(capture(&userID, &called))(context.Background(), requestWith(tt.header))

			if tt.wantErr {
				if connect.CodeOf(err) != connect.CodeUnauthenticated {
					t.Errorf("expected unauthenticated, got %v", err)
				}
				if called {
					t.Error("handler ran without a valid token")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID != tt.wantUser {
				t.Errorf("user id = %q, want %q", userID, tt.wantUser)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _ := jwtManager.Generate(models.UserProfile{UserID: "alice@example.com"})

	for header, want := range map[string]string{
		"":                 "",
		"Bearer garbage":   "",
		"Bearer " + token: "alice@example.com",
	} {
		var userID string
		var called bool
		if _, err := OptionalAuth(jwtManager)(capture(&userID, &called))(context.Background(), requestWith(header)); err != nil {
			t.Fatalf("header %q: unexpected error %v", header, err)
		}
		if !called || userID != want {
			t.Errorf("header %q: called=%v user id=%q, want %q", header, called, userID, want)
		}
	}
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	failing := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, models.ErrNotFound)
	}
	_, err := LoggingInterceptor(logger)(failing)(context.Background(), requestWith(""))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Fatalf("error not passed through: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "code=not_found") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestMetricsInterceptor(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}

	ok := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	}
	bad := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, errors.New("boom")
	}
	m.Interceptor()(ok)(context.Background(), requestWith(""))
	m.Interceptor()(ok)(context.Background(), requestWith(""))
	m.Interceptor()(bad)(context.Background(), requestWith(""))

	counts := map[string]float64{}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "gameochtend_rpc_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "code" {
					counts[label.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
	}
	if counts["ok"] != 2 || counts["unknown"] != 1 {
		t.Errorf("counts = %v, want ok=2 unknown=1", counts)
	}

	if _, err := NewMetrics(reg); err == nil {
		t.Error("registering twice should fail")
	}
}
