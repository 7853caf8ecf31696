package config

import (
	"github.com/yndnr/snipboard/internal/infra/confloader"
)

// Load returns Default() overlaid with the YAML file at path (optional)
// and SNIPBOARD_* environment variables. The result is not verified.
func Load(path string) (*ServerConfig, error) {
	return LoadWithOverrides(path, nil)
}

// LoadWithOverrides is Load followed by overrides, keyed by dotted path
// ("server.http.addr"), which take precedence over file and environment.
func LoadWithOverrides(path string, overrides map[string]any) (*ServerConfig, error) {
	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
