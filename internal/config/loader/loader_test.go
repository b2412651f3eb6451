package loader

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFS is an in-memory file system for testing.
type memFS struct {
	files map[string][]byte
}

func newMemFS() *memFS {
	return &memFS{files: make(map[string][]byte)}
}

func (m *memFS) add(path, content string) {
	m.files[path] = []byte(content)
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return memFileInfo{name: path}, nil
	}
	return nil, fs.ErrNotExist
}

type memFileInfo struct{ name string }

func (f memFileInfo) Name() string       { return f.name }
func (f memFileInfo) Size() int64        { return 0 }
func (f memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (f memFileInfo) ModTime() time.Time { return time.Time{} }
func (f memFileInfo) IsDir() bool        { return false }
func (f memFileInfo) Sys() any           { return nil }

func TestTOMLLoader_Load(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/config.toml", `
[binder]
selector_errors = "propagate"
skip_empty_keymap = true

[logging]
level = "debug"
`)

	cfg, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	require.NoError(t, err)

	binder, ok := cfg["binder"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "propagate", binder["selector_errors"])
	assert.Equal(t, true, binder["skip_empty_keymap"])

	logging, ok := cfg["logging"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "debug", logging["level"])
}

func TestTOMLLoader_LoadMissing(t *testing.T) {
	cfg, err := NewTOMLLoaderWithFS(newMemFS(), "/nope.toml").Load()
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestTOMLLoader_LoadInvalid(t *testing.T) {
	memfs := newMemFS()
	memfs.add("/bad.toml", "[binder\nselector_errors = ")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "/bad.toml", perr.Path)
	assert.Greater(t, perr.Line, 0)
	assert.Contains(t, err.Error(), "/bad.toml")
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	cfg, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[terminal]\nfocusable = \"li\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "li", cfg["terminal"].(map[string]any)["focusable"])
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoaderFrom([]string{
		"ATTACHEVENTS_LOG_LEVEL=warn",
		"ATTACHEVENTS_SKIP_EMPTY_KEYMAP=yes",
		"ATTACHEVENTS_TERMINAL_STATUS_LINE=off",
		"ATTACHEVENTS_BINDER_PROBE_SCOPE=root",
		"ATTACHEVENTS_NOSECTION=1",
		"OTHER_VAR=ignored",
		"malformed",
	})

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"logging":  map[string]any{"level": "warn"},
		"binder":   map[string]any{"skip_empty_keymap": true, "probe_scope": "root"},
		"terminal": map[string]any{"status_line": false},
	}, cfg)
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader()
	tests := map[string]string{
		"ATTACHEVENTS_BINDER_PROBE_SCOPE": "binder.probe_scope",
		"ATTACHEVENTS_LOGGING_LEVEL":      "logging.level",
		"ATTACHEVENTS_X":                  "",
		"ATTACHEVENTS_":                   "",
	}
	for env, want := range tests {
		assert.Equal(t, want, l.envToPath(env), env)
	}
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, true, parseValue("TRUE"))
	assert.Equal(t, false, parseValue("off"))
	assert.Equal(t, int64(42), parseValue("42"))
	assert.Equal(t, "", parseValue(""))
	assert.Equal(t, "body *", parseValue("body *"))
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"binder":  map[string]any{"selector_errors": "fallthrough", "probe_scope": "document"},
		"logging": map[string]any{"level": "info"},
	}
	src := map[string]any{
		"binder":   map[string]any{"probe_scope": "root"},
		"logging":  "replaced",
		"terminal": map[string]any{"focusable": "li"},
	}

	got := DeepMerge(dst, src)
	assert.Equal(t, map[string]any{
		"binder":   map[string]any{"selector_errors": "fallthrough", "probe_scope": "root"},
		"logging":  "replaced",
		"terminal": map[string]any{"focusable": "li"},
	}, got)

	assert.Equal(t, map[string]any{"a": 1}, DeepMerge(nil, map[string]any{"a": 1}))
}
