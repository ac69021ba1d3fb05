// Package configmanager loads the optional dadyarctl.yaml project
// configuration and applies defaults for everything it leaves unset.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dadyar-ai/dadyarctl/pkg/apis/project/v1alpha1"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// ConfigFileName is the base name of the optional project configuration file.
const ConfigFileName = "dadyarctl"

// EnvPrefix is the prefix for environment variable overrides
// (e.g. DADYARCTL_ENTRYPOINT).
const EnvPrefix = "DADYARCTL"

// ConfigManager loads project configuration for a given root directory.
// Priority: defaults < config file < environment variables.
type ConfigManager struct {
	Viper  *viper.Viper
	Config *v1alpha1.Project
	Writer io.Writer

	configLoaded bool
}

// NewConfigManager creates a configuration manager rooted at the given
// project directory. Output notifications are written to writer.
func NewConfigManager(root string, writer io.Writer) *ConfigManager {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(root)
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	return &ConfigManager{
		Viper:  viperInstance,
		Config: v1alpha1.NewProject(),
		Writer: writer,
	}
}

// LoadConfig loads the configuration. A missing config file is not an error;
// the defaults stand. Returns the loaded config, either freshly loaded or
// previously cached.
func (m *ConfigManager) LoadConfig() (*v1alpha1.Project, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read project configuration: %w", err)
		}
	}

	err = m.decodeInto(m.Config)
	if err != nil {
		return nil, err
	}

	m.configLoaded = true

	return m.Config, nil
}

// decodeInto applies all viper settings on top of the defaults in config.
func (m *ConfigManager) decodeInto(config *v1alpha1.Project) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           config,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("create configuration decoder: %w", err)
	}

	err = decoder.Decode(m.Viper.AllSettings())
	if err != nil {
		return fmt.Errorf("decode project configuration: %w", err)
	}

	return nil
}
