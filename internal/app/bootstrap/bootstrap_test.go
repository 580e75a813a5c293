package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/consultadmin/internal/app/system/requestid"
	"github.com/dalemusser/consultadmin/internal/app/system/timeouts"
	"github.com/dalemusser/consultadmin/internal/domain/models"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		MongoMaxPoolSize: 20,
		MaxPageSize:      100,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"empty uri only warns", func(c *AppConfig) {}, false},
		{"valid uri", func(c *AppConfig) { c.MongoURI = "mongodb://localhost:27017/consultation" }, false},
		{"zero page size", func(c *AppConfig) { c.MaxPageSize = 0 }, true},
		{"min pool above max", func(c *AppConfig) { c.MongoMinPoolSize = 50 }, true},
		{"negative delete limit", func(c *AppConfig) { c.DeleteRateLimit = -1 }, true},
		{"delete limit disabled", func(c *AppConfig) { c.DeleteRateLimit = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(nil, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSearchFields(t *testing.T) {
	cfg := AppConfig{SearchFieldsSeeker: []string{"consultation.channel"}}
	f := cfg.searchFields()
	if got := f.For(models.RoleSeeker); len(got) != 1 || got[0] != "consultation.channel" {
		t.Errorf("seeker fields = %v", got)
	}
	// Unset employer fields fall back to defaults.
	if got := f.For(models.RoleEmployer); len(got) != 3 {
		t.Errorf("employer fields = %v", got)
	}
}

func TestConnectDB_DoesNotDial(t *testing.T) {
	cfg := validConfig()
	cfg.MongoURI = "mongodb://127.0.0.1:1/consultation"

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	deps, err := ConnectDB(ctx, nil, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB failed: %v", err)
	}
	if deps.Mongo == nil || !deps.Mongo.Configured() {
		t.Fatal("expected a configured provider")
	}
	if deps.Mongo.DatabaseName() != "consultation" {
		t.Errorf("database = %q", deps.Mongo.DatabaseName())
	}
	if err := Shutdown(ctx, nil, cfg, deps, testLogger()); err != nil {
		t.Errorf("Shutdown of unopened provider: %v", err)
	}
}

func TestStartup_ConfiguresTimeouts(t *testing.T) {
	t.Cleanup(timeouts.Reset)
	cfg := validConfig()
	cfg.TimeoutShort = 3 * time.Second
	cfg.TimeoutMedium = 7 * time.Second

	if err := Startup(context.Background(), nil, cfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}
	if timeouts.Short() != 3*time.Second || timeouts.Medium() != 7*time.Second {
		t.Errorf("timeouts = %v / %v", timeouts.Short(), timeouts.Medium())
	}
}

func TestBuildHandler_Unconfigured(t *testing.T) {
	cfg := validConfig()
	deps, err := ConnectDB(context.Background(), nil, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB failed: %v", err)
	}
	h, err := BuildHandler(nil, cfg, deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	tests := []struct {
		method, target string
		status         int
		message        string
	}{
		{http.MethodGet, "/api/consultation/list?role=employer", http.StatusInternalServerError, "Missing MongoDB connection string (mongo_uri)"},
		{http.MethodPut, "/api/consultation/list", http.StatusMethodNotAllowed, "Method Not Allowed"},
		{http.MethodGet, "/nowhere", http.StatusNotFound, "Not found"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
		if rec.Code != tt.status {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rec.Code, tt.status)
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s %s: invalid JSON: %v", tt.method, tt.target, err)
		}
		if body["message"] != tt.message {
			t.Errorf("%s %s: message = %v", tt.method, tt.target, body["message"])
		}
		if rec.Header().Get(requestid.Header) == "" {
			t.Errorf("%s %s: missing request id header", tt.method, tt.target)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/health status = %d, want 503", rec.Code)
	}
}

func TestShutdown_StopsDeleteLimiter(t *testing.T) {
	cfg := validConfig()
	cfg.DeleteRateLimit = 5
	deps, err := ConnectDB(context.Background(), nil, cfg, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB failed: %v", err)
	}
	if deps.DeleteLimiter == nil {
		t.Fatal("expected a delete limiter")
	}
	if err := Shutdown(context.Background(), nil, cfg, deps, testLogger()); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	select {
	case <-deps.DeleteLimiter.Done():
	default:
		t.Error("delete limiter still running after Shutdown")
	}

	cfg.DeleteRateLimit = 0
	deps, _ = ConnectDB(context.Background(), nil, cfg, testLogger())
	if deps.DeleteLimiter != nil {
		t.Error("delete_rate_limit 0 should not build a limiter")
	}
}
