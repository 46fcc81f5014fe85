// Package config loads settings from flags, environment and a YAML file.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/rssminer/internal/application/settings"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "RSSMINER_CONFIG"

// CLI is the command-line surface: the settings plus an explicit config file flag.
type CLI struct {
	Settings settings.Settings `kong:"embed"`
	Config   kong.ConfigFlag   `kong:"help='Path to a YAML config file',type='path'"`
}

// DefaultPaths lists config file locations in priority order.
func DefaultPaths() []string {
	var paths []string
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		paths = append(paths, p)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "rssminer", "config.yaml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "rssminer", "config.yaml"))
	}
	return append(paths, "rssminer.yaml")
}

// FirstExisting returns the first path that names a regular file, or "".
func FirstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(kong.ExpandPath(p)); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// Load parses args into settings, layering the first config file found in
// DefaultPaths under the flags.
func Load(args []string, options ...kong.Option) (settings.Settings, error) {
	return LoadFrom(args, DefaultPaths(), options...)
}

// LoadFrom is Load with an explicit list of candidate config files.
func LoadFrom(args []string, paths []string, options ...kong.Option) (settings.Settings, error) {
	var cli CLI

	opts := []kong.Option{kong.Configuration(yamlKongLoader)}
	if path := FirstExisting(paths); path != "" {
		opts = []kong.Option{kong.Configuration(yamlKongLoader, path)}
	}
	opts = append(opts, options...)

	parser, err := kong.New(&cli, opts...)
	if err != nil {
		return settings.Settings{}, err
	}
	if _, err := parser.Parse(args); err != nil {
		return settings.Settings{}, err
	}
	return cli.Settings, nil
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, name := range []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")} {
			if v, ok := lookup(values, name); ok {
				return v, nil
			}
		}
		return nil, nil
	}
	return f, nil
}

// lookup finds name either as a flat key or as a dotted path into nested maps.
func lookup(values map[string]any, name string) (any, bool) {
	if v, ok := values[name]; ok {
		return v, true
	}
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return nil, false
	}
	curr := values
	for _, part := range parts[:len(parts)-1] {
		next, ok := curr[part].(map[string]any)
		if !ok {
			return nil, false
		}
		curr = next
	}
	v, ok := curr[parts[len(parts)-1]]
	return v, ok
}
