// Package loader reads configuration layers into plain maps.
//
// Each layer (a TOML file, the environment) produces a map[string]any with
// one nested map per section. Layers are combined with DeepMerge, later
// layers winning, and the result is decoded into typed configuration by
// package config.
package loader

import (
	"io"
	"io/fs"
	"os"
)

// Loader produces one attachevents configuration layer: the TOML file
// (TOMLLoader) or the ATTACHEVENTS_ environment (EnvLoader).
type Loader interface {
	// Load returns the layer as section maps keyed binder, logging and
	// terminal. An absent file yields nil, nil so the defaults stand.
	Load() (map[string]any, error)
}

// ReaderLoader is a layer that can also parse an open stream in place of
// its configured source. TOMLLoader implements it.
type ReaderLoader interface {
	LoadFromReader(r io.Reader) (map[string]any, error)
}

// FileSystem is what TOMLLoader reads the config file through.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns OSFS.
func DefaultFS() FileSystem {
	return OSFS{}
}

// DeepMerge lays src over dst. Section maps merge key by key; any other
// value in src replaces the one in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dstMap, srcMap)
			continue
		}
		dst[key] = srcVal
	}
	return dst
}
