package main

import (
	"bytes"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hailam/mnkplay/internal/config"
)

func TestRunReportsReadErrors(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	boom := errors.New("stdin closed")
	err = run(cfg, iotest.ErrReader(boom), &bytes.Buffer{})
	assert.ErrorIs(t, err, boom)
}

func TestRunStopsOnQuit(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(cfg, strings.NewReader("isready\nquit\nisready\n"), &out))
	assert.Equal(t, "readyok\n", out.String())
}
