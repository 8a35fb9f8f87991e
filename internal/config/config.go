// ==============================================================================================
// FILE: internal/config/config.go
// ==============================================================================================
// PACKAGE: config
// PURPOSE: Layered configuration for the demonstration host: built-in defaults, then an
//          optional YAML file, then CLI flags, last-wins. Adapted from holomush's koanf-based
//          config stack (the library is a declared dependency of that repo; its own config
//          loader was not part of this retrieval and is reconstructed here from koanf's
//          documented confmap/file/posflag provider chain).
// ==============================================================================================

package config

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// CodeInvalidConfig is the oops.Code attached to configuration load failures.
const CodeInvalidConfig = "INVALID_CONFIG"

// Config holds every setting cmd/lichen needs to run.
type Config struct {
	// ChunkSize is the streaming parser's read chunk size in bytes.
	ChunkSize int `koanf:"chunk_size"`
	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`
}

// defaults seeds every field before the file and flag layers are applied.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"chunk_size": 1024,
		"log_level":  "info",
		"log_format": "text",
	}
}

// Load builds a Config from, in increasing priority: built-in defaults, the
// YAML file at path (skipped if path is empty; an unreadable file is an
// error), and flags already parsed onto fs. Flags only override a key when explicitly set.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, oops.Code(CodeInvalidConfig).Wrap(err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, oops.Code(CodeInvalidConfig).
				With("path", path).
				Wrap(err)
		}
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return Config{}, oops.Code(CodeInvalidConfig).Wrap(err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Code(CodeInvalidConfig).Wrap(err)
	}
	return cfg, nil
}
