package config

import "testing"

func TestExpandEnv(t *testing.T) {
	t.Setenv("LUMEN_TEST_SET", "real")
	t.Setenv("LUMEN_TEST_EMPTY", "")
	t.Setenv("LUMEN_TEST_A", "alice")
	t.Setenv("LUMEN_TEST_B", "bob")

	tests := []struct {
		name, in, want string
	}{
		{"set", "value: ${LUMEN_TEST_SET}", "value: real"},
		{"unset", "value: ${LUMEN_TEST_UNSET_12345}", "value: "},
		{"default when unset", "value: ${LUMEN_TEST_UNSET_12345:-fallback}", "value: fallback"},
		{"default ignored when set", "value: ${LUMEN_TEST_SET:-fallback}", "value: real"},
		{"default when empty", "value: ${LUMEN_TEST_EMPTY:-fallback}", "value: fallback"},
		{"multiple", "${LUMEN_TEST_A}:${LUMEN_TEST_B}", "alice:bob"},
		{"bare dollar untouched", "cost: $LUMEN_TEST_SET", "cost: $LUMEN_TEST_SET"},
		{"no vars", "no variables here", "no variables here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandEnv(tt.in); got != tt.want {
				t.Errorf("ExpandEnv(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
