package loader

import (
	"os"
	"strconv"
	"strings"
)

// Prefix is the environment variable prefix for this program.
const Prefix = "ATTACHEVENTS_"

// EnvLoader loads configuration from environment variables.
//
// Mapped variables go to their configured path. Any other prefixed variable
// ATTACHEVENTS_SECTION_SOME_KEY goes to section.some_key.
type EnvLoader struct {
	prefix  string
	mapping map[string]string
	environ func() []string
}

// NewEnvLoader creates an environment loader with the default mapping.
func NewEnvLoader() *EnvLoader {
	return &EnvLoader{
		prefix:  Prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

// NewEnvLoaderFrom creates a loader that reads the given KEY=VALUE pairs
// instead of the process environment.
func NewEnvLoaderFrom(environ []string) *EnvLoader {
	l := NewEnvLoader()
	l.environ = func() []string { return environ }
	return l
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"ATTACHEVENTS_LOG_LEVEL":         "logging.level",
		"ATTACHEVENTS_LOG_FORMAT":        "logging.format",
		"ATTACHEVENTS_SELECTOR_ERRORS":   "binder.selector_errors",
		"ATTACHEVENTS_PROBE_SCOPE":       "binder.probe_scope",
		"ATTACHEVENTS_SKIP_EMPTY_KEYMAP": "binder.skip_empty_keymap",
		"ATTACHEVENTS_FOCUSABLE":         "terminal.focusable",
	}
}

// Load reads environment variables and returns a configuration map.
// Empty values are kept as empty strings.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}

	return config, nil
}

// envToPath converts ATTACHEVENTS_BINDER_PROBE_SCOPE to binder.probe_scope.
// Names without a key part yield "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue converts booleans and integers; everything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
