package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/wander/engine"
	"github.com/lixenwraith/wander/parameter"
)

// ErrInvalid is returned, wrapped, for any configuration that fails validation
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix namespaces environment overrides, e.g. WANDER_SIM_PEERS=500
const EnvPrefix = "WANDER"

// Config is the root configuration struct
type Config struct {
	Sim      SimConfig      `mapstructure:"sim" yaml:"sim"`
	Observer ObserverConfig `mapstructure:"observer" yaml:"observer"`
	Trace    TraceConfig    `mapstructure:"trace" yaml:"trace"`
	Audio    AudioConfig    `mapstructure:"audio" yaml:"audio"`
}

// SimConfig holds the population and motion policy
type SimConfig struct {
	Places           int             `mapstructure:"places" yaml:"places"`
	Peers            int             `mapstructure:"peers" yaml:"peers"`
	Speed            float64         `mapstructure:"speed" yaml:"speed"`
	Extent           float64         `mapstructure:"extent" yaml:"extent"`
	Seed             uint64          `mapstructure:"seed" yaml:"seed"` // 0 seeds from the clock
	TickInterval     time.Duration   `mapstructure:"tick_interval" yaml:"tick_interval"`
	RetargetSamePass bool            `mapstructure:"retarget_same_pass" yaml:"retarget_same_pass"`
	MotionWorkers    int             `mapstructure:"motion_workers" yaml:"motion_workers"`
	Favorites        FavoritesConfig `mapstructure:"favorites" yaml:"favorites"`
}

// FavoritesConfig toggles the per-peer favorite-set restriction
type FavoritesConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Count   int  `mapstructure:"count" yaml:"count"`
}

// ObserverConfig holds the websocket stream settings
type ObserverConfig struct {
	Addr   string `mapstructure:"addr" yaml:"addr"`
	MaxFPS int    `mapstructure:"max_fps" yaml:"max_fps"`
}

// TraceConfig enables the write-only tick log; empty Dir disables it
type TraceConfig struct {
	Dir   string `mapstructure:"dir" yaml:"dir"`
	Index bool   `mapstructure:"index" yaml:"index"`
}

// AudioConfig toggles the arrival chime
type AudioConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sim.places", parameter.DefaultPlaceCount)
	v.SetDefault("sim.peers", parameter.DefaultPeerCount)
	v.SetDefault("sim.speed", float64(parameter.PeerSpeed))
	v.SetDefault("sim.extent", float64(parameter.WorldExtent))
	v.SetDefault("sim.seed", 0)
	v.SetDefault("sim.tick_interval", parameter.TickInterval)
	v.SetDefault("sim.retarget_same_pass", parameter.RetargetSamePass)
	v.SetDefault("sim.motion_workers", parameter.MotionWorkers)
	v.SetDefault("sim.favorites.enabled", parameter.FavoritesEnabled)
	v.SetDefault("sim.favorites.count", parameter.DefaultFavoriteCount)
	v.SetDefault("observer.addr", parameter.ObserverAddr)
	v.SetDefault("observer.max_fps", parameter.ObserverMaxFPS)
	v.SetDefault("trace.dir", "")
	v.SetDefault("trace.index", false)
	v.SetDefault("audio.enabled", false)
}

// Default returns the reference configuration, ignoring files and environment
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		// Defaults are compile-time constants
		panic(fmt.Sprintf("default config: %v", err))
	}
	return cfg
}

// Load reads configuration from file and environment, then validates it
// An empty cfgFile searches ./configs and . for config.yaml; a missing file is not an error
func Load(cfgFile string) (*Config, error) {
	cfg, err := load(viper.New(), cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func load(v *viper.Viper, cfgFile string) (*Config, error) {
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Dump writes the effective configuration as YAML
func (c *Config) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// SimResource converts the simulation section to the engine policy resource
func (c *Config) SimResource() *engine.SimResource {
	return &engine.SimResource{
		Speed:            float32(c.Sim.Speed),
		Extent:           float32(c.Sim.Extent),
		FavoritesEnabled: c.Sim.Favorites.Enabled,
		RetargetSamePass: c.Sim.RetargetSamePass,
		MotionWorkers:    c.Sim.MotionWorkers,
	}
}

// FavoriteCount returns the favorites sampled per peer, 0 when the policy is off
func (c *Config) FavoriteCount() int {
	if !c.Sim.Favorites.Enabled {
		return 0
	}
	return c.Sim.Favorites.Count
}
