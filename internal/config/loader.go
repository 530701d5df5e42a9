package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix marks environment variables that override configuration, with
// underscores mapping to key separators: FIELDGEN_GRID_NX sets grid.nx.
const envPrefix = "FIELDGEN_"

// flagKeys maps command-line flag names to configuration keys. Flags not
// listed here do not reach the configuration.
var flagKeys = map[string]string{
	"nx":      "grid.nx",
	"ny":      "grid.ny",
	"nz":      "grid.nz",
	"time":    "grid.t",
	"workers": "eval.workers",
	"format":  "eval.format",
	"verbose": "verbose",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > fieldgen.yaml > fieldgen.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("fieldgen.yaml"); err == nil {
		return "fieldgen.yaml"
	}
	if _, err := os.Stat("fieldgen.yml"); err == nil {
		return "fieldgen.yml"
	}
	return ""
}

// Load loads configuration and validates it.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
// cfgFile may be empty, in which case fieldgen.yaml or fieldgen.yml in the
// working directory is used when present. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Project, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set.
			if !f.Changed {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var p Project
	if err := k.Unmarshal("", &p); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	p.File = path
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
