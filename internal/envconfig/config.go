// Package envconfig reads runtime configuration from CODEBOOK_* environment
// variables. Every getter reads the environment on each call.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of surrounding whitespace and
// quotes.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a reader for a boolean variable. A set but
// unparsable value counts as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a reader for a boolean variable defaulting to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// Uint returns a reader for an unsigned integer variable. Invalid values are
// logged and replaced by defaultValue.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// LogLevel returns the log level selected by CODEBOOK_DEBUG.
//
// A true boolean selects DEBUG; an integer n selects level -4n, so 2 enables
// TRACE.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("CODEBOOK_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// CodebookSize is the number of entries per codebook (CODEBOOK_SIZE).
	CodebookSize = Uint("CODEBOOK_SIZE", 256)
	// Strict rejects unrecognized state dict keys (CODEBOOK_STRICT).
	Strict = Bool("CODEBOOK_STRICT")
	// Workers bounds concurrent forward passes, 0 meaning all CPUs (CODEBOOK_WORKERS).
	Workers = Uint("CODEBOOK_WORKERS", 0)
)

// EnvVar describes one configuration variable and its current value.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every configuration variable keyed by name.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"CODEBOOK_DEBUG":   {"CODEBOOK_DEBUG", LogLevel(), "Show additional debug information (e.g. CODEBOOK_DEBUG=1)"},
		"CODEBOOK_SIZE":    {"CODEBOOK_SIZE", CodebookSize(), "Entries per codebook in quantized state dicts (default 256)"},
		"CODEBOOK_STRICT":  {"CODEBOOK_STRICT", Strict(), "Fail on unrecognized state dict keys instead of skipping them"},
		"CODEBOOK_WORKERS": {"CODEBOOK_WORKERS", Workers(), "Maximum number of concurrent forward passes (default: all CPUs)"},
	}
}

// Values returns the configuration formatted as strings.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
