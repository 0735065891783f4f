package pglog_test

import (
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgext-dev/pgext-sdk/internal/fakehost"
	"github.com/pgext-dev/pgext-sdk/pglog"
	"github.com/pgext-dev/pgext-sdk/pgsys"
)

func TestHandlerForwardsToHost(t *testing.T) {
	h := fakehost.Install(t)
	logger := slog.New(pglog.NewHandler())

	logger.Info("loading extension", "version", "0.1.0")

	r, ok := h.LastReport()
	require.True(t, ok)
	assert.Equal(t, pgsys.LevelInfo, r.Level)
	assert.Equal(t, "loading extension version=0.1.0", r.Message)
}

func TestHandlerLevelMapping(t *testing.T) {
	h := fakehost.Install(t)
	logger := slog.New(pglog.NewHandler(pglog.WithLevel(slog.LevelDebug)))

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")

	reports := h.Reports()
	require.Len(t, reports, 4)
	assert.Equal(t, pgsys.LevelDebug1, reports[0].Level)
	assert.Equal(t, pgsys.LevelInfo, reports[1].Level)
	assert.Equal(t, pgsys.LevelWarning, reports[2].Level)
	// slog errors must not abort the call, so they cap at WARNING.
	assert.Equal(t, pgsys.LevelWarning, reports[3].Level)
}

func TestHandlerFiltersBelowMinimum(t *testing.T) {
	h := fakehost.Install(t)
	logger := slog.New(pglog.NewHandler(pglog.WithLevel(slog.LevelWarn)))

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")

	require.Len(t, h.Reports(), 1)
	assert.Equal(t, "kept", h.Reports()[0].Message)
}

func TestHandlerAttrsAndGroups(t *testing.T) {
	h := fakehost.Install(t)
	logger := slog.New(pglog.NewHandler()).
		With("fn", "add_together").
		WithGroup("call")

	logger.Info("invoked", "args", 2)

	r, ok := h.LastReport()
	require.True(t, ok)
	assert.Equal(t, "invoked fn=add_together call.args=2", r.Message)
}

func TestHelpers(t *testing.T) {
	h := fakehost.Install(t)

	pglog.Debug("d %d", 1)
	pglog.Log("l")
	pglog.Info("i")
	pglog.Notice("n")
	pglog.Warning("w")

	reports := h.Reports()
	require.Len(t, reports, 5)
	assert.Equal(t, pgsys.LevelDebug1, reports[0].Level)
	assert.Equal(t, "d 1", reports[0].Message)
	assert.Equal(t, pgsys.LevelLog, reports[1].Level)
	assert.Equal(t, pgsys.LevelInfo, reports[2].Level)
	assert.Equal(t, pgsys.LevelNotice, reports[3].Level)
	assert.Equal(t, pgsys.LevelWarning, reports[4].Level)
}

func TestErrorHelperAborts(t *testing.T) {
	h := fakehost.Install(t)

	jump := fakehost.CatchJump(func() { pglog.Error("division by zero") })
	require.NotNil(t, jump)
	assert.Equal(t, pgsys.LevelError, jump.Level)
	assert.Equal(t, "division by zero", jump.Message)

	jump = fakehost.CatchJump(func() { pglog.Fatal("backend going down") })
	require.NotNil(t, jump)
	assert.Equal(t, pgsys.LevelFatal, jump.Level)
	require.Len(t, h.Reports(), 2)
}
