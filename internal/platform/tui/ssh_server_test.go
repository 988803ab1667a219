package tui

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-shooter/internal/config"
	"github.com/vovakirdan/tui-shooter/internal/storage"
)

func newTestSSHServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	require.NoError(t, err)
	require.NotNil(t, srv.store)
	return srv
}

func TestSSHServerShutdownSavesDrainingRuns(t *testing.T) {
	srv := newTestSSHServer(t)
	run := storage.RunRecord{Player: "late", Mode: config.ModeHard, Score: 40, Duration: time.Second, Ticks: 60}

	var saveErr error
	err := srv.shutdown(context.Background(), func(context.Context) error {
		// a session finishing its run while the server drains
		_, saveErr = srv.store.SaveRun(run)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, saveErr)

	// the store is closed once draining is done
	_, err = srv.store.SaveRun(run)
	assert.Error(t, err)
}

func TestSSHServerShutdownReturnsDrainError(t *testing.T) {
	srv := newTestSSHServer(t)

	err := srv.shutdown(context.Background(), func(context.Context) error {
		return context.DeadlineExceeded
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	assert.Equal(t, ":23234", cfg.Address)
	assert.Equal(t, 60, cfg.TickRate)
	assert.NoError(t, cfg.Shooter.Validate())
}
