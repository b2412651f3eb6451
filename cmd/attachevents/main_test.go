package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func fixtures(t *testing.T) (page, script string) {
	t.Helper()
	dir := t.TempDir()
	page = filepath.Join(dir, "page.html")
	script = filepath.Join(dir, "behaviors.lua")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body><h1>Hi</h1></body></html>`), 0o644))
	require.NoError(t, os.WriteFile(script, []byte(`
return {
	h1 = { click = function(this) print("clicked " .. this:text()) end },
	k = function() print("k") end,
}
`), 0o644))
	return page, script
}

func TestReplayCommand(t *testing.T) {
	page, script := fixtures(t)

	out, err := execute(t, "click h1\nkeypress k\n", "replay", page, script, "-")
	require.NoError(t, err)
	assert.Equal(t, "clicked Hi\nk\n", out)

	events := filepath.Join(t.TempDir(), "events.txt")
	require.NoError(t, os.WriteFile(events, []byte("keypress k h1\n"), 0o644))
	out, err = execute(t, "", "replay", page, script, events)
	require.NoError(t, err)
	assert.Equal(t, "k\n", out)

	_, err = execute(t, "click table\n", "replay", "--stop-on-error", page, script)
	assert.Error(t, err)
}

func TestLintCommand(t *testing.T) {
	page, script := fixtures(t)
	out, err := execute(t, "", "lint", page, script)
	require.NoError(t, err)
	assert.Empty(t, out)

	bad := filepath.Join(t.TempDir(), "bad.lua")
	require.NoError(t, os.WriteFile(bad, []byte(`return { clik = function() end }`), 0o644))
	out, err = execute(t, "", "lint", page, bad)
	assert.ErrorIs(t, err, errFindings)
	assert.Contains(t, out, "unknown-event")
	assert.Contains(t, out, "click")
}

func TestEventsCommand(t *testing.T) {
	out, err := execute(t, "", "events")
	require.NoError(t, err)
	assert.Contains(t, out, "click\n")

	out, err = execute(t, "", "events", "--prefix", "mouse")
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		assert.True(t, strings.HasPrefix(line, "mouse"), line)
	}

	out, err = execute(t, "", "events", "dblclk")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dblclick\n"), out)
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "", "config", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "[binder]")
	assert.Contains(t, out, "[logging]")
	assert.Contains(t, out, "debug")

	_, err = execute(t, "", "config", "--log-level", "loud")
	assert.Error(t, err)
}

func TestArgs(t *testing.T) {
	_, err := execute(t, "", "lint", "only-one")
	assert.Error(t, err)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLintWatch(t *testing.T) {
	page, script := fixtures(t)

	cmd := newRootCmd()
	out := &syncBuffer{}
	cmd.SetOut(out)
	cmd.SetErr(&syncBuffer{})
	cmd.SetArgs([]string{"lint", "--watch", page, script})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	bad := []byte(`return { clik = function() end }`)
	require.Eventually(t, func() bool {
		_ = os.WriteFile(script, bad, 0o644)
		return strings.Contains(out.String(), "unknown-event")
	}, 5*time.Second, 150*time.Millisecond)
	assert.Contains(t, out.String(), "changed")

	cancel()
	assert.NoError(t, <-done)
}
