// config.go loads optional CLI defaults from .trialgate/config.yaml (flags override).
package gatecli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// localConfig holds optional values from .trialgate/config.yaml.
type localConfig struct {
	Gateway string `yaml:"gateway"`
	Token   string `yaml:"token"`
}

// loadLocalConfig tries ./.trialgate/config.yaml then ~/.trialgate/config.yaml.
// If neither file exists, returns an empty config with no error.
func loadLocalConfig() (localConfig, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return localConfig{}, "", err
	}
	try := []string{
		filepath.Join(cwd, ".trialgate", "config.yaml"),
	}
	if home, err := os.UserHomeDir(); err == nil {
		try = append(try, filepath.Join(home, ".trialgate", "config.yaml"))
	}
	for _, p := range try {
		data, err := os.ReadFile(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return localConfig{}, "", err
		}
		var cfg localConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return localConfig{}, "", fmt.Errorf("%s: %w", p, err)
		}
		return cfg, p, nil
	}
	return localConfig{}, "", nil
}
