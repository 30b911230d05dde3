package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExitCodes(t *testing.T) {
	t.Run("Unknown flag", func(t *testing.T) {
		assert.Equal(t, 2, run([]string{"--no-such-flag"}))
	})

	t.Run("Unreachable database returns instead of exiting", func(t *testing.T) {
		t.Setenv("DB_HOST", "127.0.0.1")
		t.Setenv("DB_PORT", "1")

		assert.Equal(t, 1, run([]string{"--lookahead-days", "1"}))
	})
}
