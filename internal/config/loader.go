package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FOLD_FOLD_SPEED.
const EnvPrefix = "FOLD_"

// LoadFold loads the fold configuration.
// Search order: customPath -> ~/.fold/configs/fold.yaml -> ./configs/fold.yaml
// -> embedded default -> hardcoded default. Environment overrides are
// applied on top of whichever file was used, then the result is validated.
func LoadFold(customPath string) (FoldConfig, error) {
	cfg, err := loadFoldFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFoldFile(customPath string) (FoldConfig, error) {
	// Fields a file leaves out keep their defaults.
	cfg := DefaultFoldConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("fold.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultFoldConfig()
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "fold.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultFoldConfig()
	}

	if err := yaml.Unmarshal(defaultFoldYAML, &cfg); err != nil {
		return DefaultFoldConfig(), nil
	}
	return cfg, nil
}

// ParseEnv applies FOLD_* environment variables to target.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fold", "configs", filename)
}

// DataDir returns ~/.fold, the home of the score database and logs.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fold"
	}
	return filepath.Join(home, ".fold")
}
