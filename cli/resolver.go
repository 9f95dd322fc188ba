package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// resolve is a [kong.ConfigurationLoader] that parses configuration files
// written in TOML.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.toml")
//
// Top-level keys are matched against flag names:
//   - Flag names with hyphens (e.g., "log-level") may be written with either
//     hyphens or underscores (e.g., "log_level")
//   - String values should be quoted
//   - Boolean values are true or false (unquoted)
//   - Numbers are unquoted
//
// Example config file:
//
//	log-level = "debug"
//	log-format = "json"
//	log-pretty = true
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	_, err := toml.NewDecoder(r).Decode(&values)
	if err != nil {
		// Parse error: ignore the file and resolve nothing.
		return config{}, nil
	}

	for key, value := range values {
		values[key] = normalize(value)
	}

	return config(values), nil
}

// config implements [kong.Resolver] for TOML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but config keys may use
	// underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// normalize converts decoded TOML values into representations Kong can
// apply to flags. Kong requires numbers as strings for parsing, and list
// elements are normalized recursively.
func normalize(value any) any {
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10)

	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)

	case []any:
		for i, elem := range v {
			v[i] = normalize(elem)
		}

		return v

	default:
		return value
	}
}
