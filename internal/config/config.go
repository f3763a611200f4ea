// Package config loads the editor settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/logicx/pkg/interaction"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "logicx.yaml"

// Config represents the structure of logicx.yaml.
type Config struct {
	Addr      string `mapstructure:"addr"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	// Format is the document format used when none can be inferred.
	Format  string `mapstructure:"format"`
	Metrics bool   `mapstructure:"metrics"`

	View ViewConfig `mapstructure:"view"`
}

// ViewConfig holds the initial pointer-controller view.
type ViewConfig struct {
	GridScale float64 `mapstructure:"grid_scale"`
	Snap      bool    `mapstructure:"snap"`
	SnapUnit  float64 `mapstructure:"snap_unit"`
	Edit      bool    `mapstructure:"edit"`
}

// Default returns the built-in settings.
func Default() Config {
	v := interaction.DefaultView()
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Format:    "yaml",
		Metrics:   true,
		View: ViewConfig{
			GridScale: v.GridScale,
			Snap:      v.Snap,
			SnapUnit:  v.SnapUnit,
			Edit:      v.Edit,
		},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// Keys absent from the file keep their default; unknown keys are an error.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// InteractionView converts the view settings for the controller.
func (c Config) InteractionView() interaction.View {
	v := interaction.DefaultView()
	if c.View.GridScale > 0 {
		v.GridScale = c.View.GridScale
	}
	if c.View.SnapUnit > 0 {
		v.SnapUnit = c.View.SnapUnit
	}
	v.Snap = c.View.Snap
	v.Edit = c.View.Edit
	return v
}
