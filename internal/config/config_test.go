package config

import (
	"os"
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				if err := os.Setenv(tt.key, tt.value); err != nil {
					t.Fatalf("failed to set env var: %v", err)
				}
				defer func() {
					if err := os.Unsetenv(tt.key); err != nil {
						t.Errorf("failed to unset env var: %v", err)
					}
				}()
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestGetenv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		def       string
		shouldSet bool
		expected  string
	}{
		{
			name:      "variable set",
			key:       "TEST_GETENV",
			value:     "custom",
			def:       "default",
			shouldSet: true,
			expected:  "custom",
		},
		{
			name:     "variable not set returns default",
			key:      "TEST_GETENV_MISSING",
			def:      "default",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}
			if got := getenv(tt.key, tt.def); got != tt.expected {
				t.Errorf("getenv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		def       int
		shouldSet bool
		expected  int
	}{
		{
			name:      "valid integer",
			key:       "TEST_INT",
			value:     "42",
			def:       5,
			shouldSet: true,
			expected:  42,
		},
		{
			name:      "invalid integer falls back",
			key:       "TEST_INT_INVALID",
			value:     "not_a_number",
			def:       5,
			shouldSet: true,
			expected:  5,
		},
		{
			name:     "variable not set",
			key:      "TEST_INT_MISSING",
			def:      7,
			expected: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}
			if got := getenvInt(tt.key, tt.def); got != tt.expected {
				t.Errorf("getenvInt() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		def       time.Duration
		shouldSet bool
		expected  time.Duration
	}{
		{
			name:      "valid duration",
			key:       "TEST_DUR",
			value:     "30s",
			def:       time.Second,
			shouldSet: true,
			expected:  30 * time.Second,
		},
		{
			name:      "invalid duration falls back",
			key:       "TEST_DUR_INVALID",
			value:     "later",
			def:       2 * time.Second,
			shouldSet: true,
			expected:  2 * time.Second,
		},
		{
			name:     "variable not set",
			key:      "TEST_DUR_MISSING",
			def:      time.Minute,
			expected: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustDuration(tt.key, tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		def       bool
		shouldSet bool
		expected  bool
	}{
		{
			name:      "explicit false",
			key:       "TEST_BOOL",
			value:     "false",
			def:       true,
			shouldSet: true,
			expected:  false,
		},
		{
			name:      "garbage falls back",
			key:       "TEST_BOOL_INVALID",
			value:     "yep",
			def:       true,
			shouldSet: true,
			expected:  true,
		},
		{
			name:     "variable not set",
			key:      "TEST_BOOL_MISSING",
			def:      false,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustBool(tt.key, tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "https://nav.example.com",
			expected: []string{"https://nav.example.com"},
		},
		{
			name:     "multiple with spaces and quotes",
			input:    ` "10.0.0.0/8" , 192.168.1.0/24 ,`,
			expected: []string{"10.0.0.0/8", "192.168.1.0/24"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}
