package config

import (
	"reflect"
	"testing"
	"time"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("%s should have panicked", name)
		}
	}()
	fn()
}

func TestRequireEnv(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")
	if got := requireEnv("TEST_VAR"); got != "test_value" {
		t.Errorf("requireEnv() = %v, want %v", got, "test_value")
	}
	expectPanic(t, "requireEnv(missing)", func() { requireEnv("TEST_VAR_MISSING") })
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  int
		wantPanic bool
	}{
		{name: "valid integer", value: "42", expected: 42},
		{name: "invalid integer", value: "not_a_number", wantPanic: true},
		{name: "missing variable", value: "", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			if tt.wantPanic {
				expectPanic(t, "requireEnvInt()", func() { requireEnvInt("TEST_INT") })
				return
			}
			if got := requireEnvInt("TEST_INT"); got != tt.expected {
				t.Errorf("requireEnvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{` a , "b",, 'c' `, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := splitAndTrim(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitAndTrim(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 15 * time.Second, expected: 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			if got := mustDuration("TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetenvInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "1048576")
	if got := getenvInt64("TEST_INT64", 1); got != 1<<20 {
		t.Errorf("getenvInt64() = %v, want %v", got, 1<<20)
	}
	t.Setenv("TEST_INT64", "lots")
	if got := getenvInt64("TEST_INT64", 7); got != 7 {
		t.Errorf("getenvInt64() = %v, want %v", got, 7)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INDEX_STORE", "")
	t.Setenv("INDEX_SEMESTER_START", "")
	t.Setenv("INDEX_SEMESTER_END", "")
	t.Setenv("INDEX_UPLOAD_MAX_BYTES", "")
	t.Setenv("INDEX_LOG_LEVEL", "info")

	cfg := Load()
	if cfg.StoreBackend != StoreBolt {
		t.Errorf("StoreBackend = %q, want %q", cfg.StoreBackend, StoreBolt)
	}
	if cfg.UploadMaxBytes != 10<<20 {
		t.Errorf("UploadMaxBytes = %d, want %d", cfg.UploadMaxBytes, 10<<20)
	}
	if cfg.ChatRetention != 30*24*time.Hour {
		t.Errorf("ChatRetention = %v, want 720h", cfg.ChatRetention)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown store", env: map[string]string{"INDEX_STORE": "sqlite"}},
		{name: "redis without address", env: map[string]string{"INDEX_STORE": "redis", "INDEX_REDIS_ADDR": "", "INDEX_REDIS_DB": "0"}},
		{name: "redis password required", env: map[string]string{
			"INDEX_STORE": "redis", "INDEX_REDIS_ADDR": "localhost:6379", "INDEX_REDIS_DB": "0",
			"INDEX_REDIS_PASSWORD_REQUIRED": "true", "INDEX_REDIS_PASSWORD": "",
		}},
		{name: "half a semester", env: map[string]string{"INDEX_SEMESTER_START": "2025-01-13", "INDEX_SEMESTER_END": ""}},
		{name: "reversed semester", env: map[string]string{"INDEX_SEMESTER_START": "2025-05-02", "INDEX_SEMESTER_END": "2025-01-13"}},
		{name: "zero upload limit", env: map[string]string{"INDEX_UPLOAD_MAX_BYTES": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			expectPanic(t, "Load()", func() { Load() })
		})
	}
}

func TestRedacted(t *testing.T) {
	cfg := &Config{RedisPassword: "hunter2", OpenAIAPIKey: "sk-test"}
	got := cfg.Redacted()
	if got.RedisPassword == "hunter2" || got.OpenAIAPIKey == "sk-test" {
		t.Errorf("Redacted() leaked secrets: %+v", got)
	}
	if cfg.RedisPassword != "hunter2" {
		t.Error("Redacted() must not modify the receiver")
	}
}
