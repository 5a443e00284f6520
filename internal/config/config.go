package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Yunis-rgbdev/crmmonitoring/internal/domain"
)

type Config struct {
	Hosts      []HostConfig    `mapstructure:"hosts"`
	Poll       PollConfig      `mapstructure:"poll"`
	Thresholds ThresholdConfig `mapstructure:"thresholds"`
	Alerts     AlertConfig     `mapstructure:"alerts"`
	Notify     NotifyConfig    `mapstructure:"notify"`
	Dashboard  DashboardConfig `mapstructure:"dashboard"`
	Log        LogConfig       `mapstructure:"log"`
	Storage    StorageConfig   `mapstructure:"storage"`
	Probe      ProbeConfig     `mapstructure:"probe"`
}

type HostConfig struct {
	Label   string `mapstructure:"label"`
	Address string `mapstructure:"address"`
	Probe   string `mapstructure:"probe"`
	Port    int    `mapstructure:"port"`
}

type PollConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

type ThresholdConfig struct {
	FastMS float64 `mapstructure:"fast_ms"`
}

type AlertConfig struct {
	RepeatEvery time.Duration `mapstructure:"repeat_every"`
	OnRecovery  bool          `mapstructure:"on_recovery"`
}

type NotifyConfig struct {
	Desktop      bool   `mapstructure:"desktop"`
	SlackWebhook string `mapstructure:"slack_webhook"`
}

type DashboardConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Dir         string `mapstructure:"dir"`
	ResultsFile string `mapstructure:"results_file"`
}

type StorageConfig struct {
	Path      string        `mapstructure:"path"` // empty = in-memory only
	Retention time.Duration `mapstructure:"retention"`
}

type ProbeConfig struct {
	Unprivileged bool `mapstructure:"unprivileged"`
}

// Load reads crmmonitor.yaml (working dir, ./configs, ~/.crmmonitor),
// applies defaults and CRMMON_* env overrides, and validates the result.
// A missing config file is fine: the defaults monitor the original
// Internet/WireGuard/VoIP trio.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("crmmonitor")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("configs")
	v.AddConfigPath("$HOME/.crmmonitor")
	v.SetEnvPrefix("CRMMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if len(cfg.Hosts) == 0 {
		cfg.Hosts = defaultHosts()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("poll.interval", "5s")
	v.SetDefault("poll.timeout", "2s")
	v.SetDefault("poll.concurrency", 4)

	v.SetDefault("thresholds.fast_ms", 200.0)

	v.SetDefault("alerts.repeat_every", "0s")
	v.SetDefault("alerts.on_recovery", true)

	v.SetDefault("notify.desktop", true)
	v.SetDefault("notify.slack_webhook", "")

	v.SetDefault("dashboard.addr", "127.0.0.1:8422")

	v.SetDefault("log.dir", "logs")
	v.SetDefault("log.results_file", "logs/results.jsonl")

	v.SetDefault("storage.path", "")
	v.SetDefault("storage.retention", "720h") // 30 days

	v.SetDefault("probe.unprivileged", true)
}

func defaultHosts() []HostConfig {
	return []HostConfig{
		{Label: "Internet", Address: "79.127.78.196", Probe: "icmp"},
		{Label: "WireGuard", Address: "10.60.0.1", Probe: "icmp"},
		{Label: "VoIP", Address: "10.60.0.4", Probe: "icmp"},
	}
}

func (c *Config) Validate() error {
	if len(c.Hosts) == 0 {
		return errors.New("at least one host is required")
	}
	seen := make(map[domain.HostID]string, len(c.Hosts))
	for i, h := range c.Hosts {
		if h.Label == "" {
			return fmt.Errorf("host %d: label is required", i)
		}
		if h.Address == "" {
			return fmt.Errorf("host %q: address is required", h.Label)
		}
		switch h.Probe {
		case "", "icmp":
		case "tcp":
			if h.Port < 1 || h.Port > 65535 {
				return fmt.Errorf("host %q: tcp probe needs a port in 1..65535", h.Label)
			}
		default:
			return fmt.Errorf("host %q: unknown probe %q (want icmp or tcp)", h.Label, h.Probe)
		}
		id := domain.SlugID(h.Label)
		if id == "" {
			return fmt.Errorf("host %q: label yields an empty id", h.Label)
		}
		if prev, dup := seen[id]; dup {
			return fmt.Errorf("hosts %q and %q map to the same id %q", prev, h.Label, id)
		}
		seen[id] = h.Label
	}

	if c.Poll.Interval <= 0 {
		return errors.New("poll.interval must be positive")
	}
	if c.Poll.Timeout <= 0 {
		return errors.New("poll.timeout must be positive")
	}
	if c.Poll.Concurrency < 1 {
		return errors.New("poll.concurrency must be at least 1")
	}
	if c.Thresholds.FastMS <= 0 {
		return errors.New("thresholds.fast_ms must be positive")
	}
	if c.Alerts.RepeatEvery < 0 {
		return errors.New("alerts.repeat_every cannot be negative")
	}
	if c.Dashboard.Addr == "" {
		return errors.New("dashboard.addr is required")
	}
	return nil
}

// DomainHosts converts the configured host entries to domain hosts.
func (c *Config) DomainHosts() []domain.Host {
	out := make([]domain.Host, 0, len(c.Hosts))
	for _, h := range c.Hosts {
		probe := h.Probe
		if probe == "" {
			probe = "icmp"
		}
		out = append(out, domain.Host{
			ID:      domain.SlugID(h.Label),
			Label:   h.Label,
			Address: h.Address,
			Probe:   probe,
			Port:    h.Port,
		})
	}
	return out
}
