package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVar(t *testing.T) {
	t.Setenv("CODEBOOK_TEST_VAR", `  "quoted"  `)
	assert.Equal(t, "quoted", Var("CODEBOOK_TEST_VAR"))

	t.Setenv("CODEBOOK_TEST_VAR", "'single'")
	assert.Equal(t, "single", Var("CODEBOOK_TEST_VAR"))
}

func TestBool(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"true":  true,
		"1":     true,
		"false": false,
		"0":     false,
		"yes":   true,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("CODEBOOK_STRICT", k)
			assert.Equal(t, v, Strict())
		})
	}
}

func TestUint(t *testing.T) {
	cases := map[string]uint{
		"":     256,
		"16":   16,
		" 4 ":  4,
		"-1":   256,
		"many": 256,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("CODEBOOK_SIZE", k)
			assert.Equal(t, v, CodebookSize())
		})
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"t":     slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
		"-1":    slog.LevelWarn,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("CODEBOOK_DEBUG", k)
			assert.Equal(t, v, LogLevel())
		})
	}
}

func TestAsMap(t *testing.T) {
	t.Setenv("CODEBOOK_WORKERS", "3")

	m := AsMap()
	assert.Len(t, m, 4)
	assert.Equal(t, uint(3), m["CODEBOOK_WORKERS"].Value)
	assert.Equal(t, "3", Values()["CODEBOOK_WORKERS"])
	for name, v := range m {
		assert.Equal(t, name, v.Name)
		assert.NotEmpty(t, v.Description)
	}
}
