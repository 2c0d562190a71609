package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	var c AppConfig
	applyDefaults(&c)

	if c.AppPort != "3000" {
		t.Errorf("AppPort = %q, want 3000", c.AppPort)
	}
	if c.JWTTTLMinutes != 60 {
		t.Errorf("JWTTTLMinutes = %d, want 60", c.JWTTTLMinutes)
	}
	if c.RateLimitPerMinute != 30 {
		t.Errorf("RateLimitPerMinute = %d, want 30", c.RateLimitPerMinute)
	}
	if !reflect.DeepEqual(c.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", c.AllowedOrigins)
	}
	if c.RedisHost != "" {
		t.Errorf("RedisHost = %q, want disabled by default", c.RedisHost)
	}
}

func TestApplyDefaults_KeepsExistingValues(t *testing.T) {
	t.Parallel()

	c := AppConfig{AppPort: "8080", JWTTTLMinutes: 15}
	applyDefaults(&c)

	if c.AppPort != "8080" {
		t.Errorf("AppPort = %q, want 8080", c.AppPort)
	}
	if c.JWTTTLMinutes != 15 {
		t.Errorf("JWTTTLMinutes = %d, want 15", c.JWTTTLMinutes)
	}
}

func TestLoadJSONConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{
		"app_port": "9000",
		"jwt_ttl_minutes": 120,
		"allowed_origins": "https://a.example, https://b.example",
		"log_compress": true
	}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	var c AppConfig
	if err := loadJSONConfig(path, &c); err != nil {
		t.Fatalf("loadJSONConfig: %v", err)
	}
	if c.AppPort != "9000" {
		t.Errorf("AppPort = %q, want 9000", c.AppPort)
	}
	if c.JWTTTLMinutes != 120 {
		t.Errorf("JWTTTLMinutes = %d, want 120", c.JWTTTLMinutes)
	}
	if !reflect.DeepEqual(c.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("AllowedOrigins = %v", c.AllowedOrigins)
	}
	if !c.LogCompress {
		t.Error("LogCompress = false, want true")
	}
}

func TestLoadJSONConfig_MissingFileIsAnError(t *testing.T) {
	t.Parallel()

	var c AppConfig
	if err := loadJSONConfig(filepath.Join(t.TempDir(), "nope.json"), &c); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSplitAndTrim(t *testing.T) {
	t.Parallel()

	got := splitAndTrim(" a ,, b,c ")
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("splitAndTrim = %v", got)
	}
}
