package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/dragdrop"
)

// EnvPrefix prefixes every environment override, e.g. ARBOR_LOG_LEVEL.
const EnvPrefix = "ARBOR"

var validate = validator.New()

// Config holds the CLI and server configuration.
type Config struct {
	Tree   TreeConfig   `mapstructure:"tree"`
	Drag   DragConfig   `mapstructure:"drag"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// TreeConfig holds the tree-wide capability switches.
type TreeConfig struct {
	Selectable    bool `mapstructure:"selectable"`
	Checkable     bool `mapstructure:"checkable"`
	Multiple      bool `mapstructure:"multiple"`
	CheckStrictly bool `mapstructure:"check_strictly"`
	ExpandAll     bool `mapstructure:"expand_all"`
}

// DragConfig holds the drop bands and hover-expansion delay.
type DragConfig struct {
	Thresholds dragdrop.Thresholds `mapstructure:",squash"`
	HoverDelay time.Duration       `mapstructure:"hover_delay" validate:"gte=0"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr    string `mapstructure:"addr" validate:"required"`
	Metrics bool   `mapstructure:"metrics"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// New returns a viper instance with defaults and environment overrides in place.
// Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	th := dragdrop.DefaultThresholds()
	v.SetDefault("tree.selectable", true)
	v.SetDefault("tree.checkable", true)
	v.SetDefault("tree.multiple", false)
	v.SetDefault("tree.check_strictly", false)
	v.SetDefault("tree.expand_all", false)
	v.SetDefault("drag.side_range", th.SideRange)
	v.SetDefault("drag.min_gap", th.MinGap)
	v.SetDefault("drag.hover_delay", dragdrop.DefaultHoverDelay)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.metrics", false)
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Load reads the optional config file at path into v and validates the result.
// Precedence is flag, then environment, then file, then default.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("invalid config: %s", verrs.Error())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// TreeOptions translates the configuration into tree options.
func (c *Config) TreeOptions() []arbor.Option {
	return []arbor.Option{
		arbor.WithSelectable(c.Tree.Selectable),
		arbor.WithCheckable(c.Tree.Checkable),
		arbor.WithMultiple(c.Tree.Multiple),
		arbor.WithCheckStrictly(c.Tree.CheckStrictly),
		arbor.WithDefaultExpandAll(c.Tree.ExpandAll),
		arbor.WithThresholds(c.Drag.Thresholds),
		arbor.WithHoverDelay(c.Drag.HoverDelay),
	}
}
