package config

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// MaxInputSize limits config input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

// configExtensions lists recognized config file extensions in lookup order.
var configExtensions = []string{".yaml", ".yml", ".toml"}

var (
	ErrEmptyData       = errors.New("empty config data")
	ErrInputTooLarge   = errors.New("config input exceeds maximum size")
	ErrUnknownFileType = errors.New("unknown config file type")
)

// decodeStrict decodes data into v, choosing the format from the file
// extension. Unknown fields are rejected in both formats.
func decodeStrict(path string, data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
			return fmt.Errorf("yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q (use .yaml, .yml or .toml)", ErrUnknownFileType, filepath.Ext(path))
	}
	return nil
}

// Marshal encodes cfg as YAML. Used by the CLI to print the effective config.
func Marshal(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return out, nil
}
