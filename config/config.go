package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/realtime"
	"github.com/omkar-jagtap8443/Talk-genius/scoring"
)

// EnvPrefix prefixes environment overrides, e.g. TALKGENIUS_STORAGE_DRIVER.
const EnvPrefix = "TALKGENIUS"

type Service struct {
	URL            string `yaml:"url" mapstructure:"url"`
	APIKeyEnv      string `yaml:"api_key_env" mapstructure:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// APIKey reads the key from the environment variable the service names.
func (s Service) APIKey() string {
	if s.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.APIKeyEnv)
}

func (s Service) Timeout() time.Duration { return DurSeconds(s.TimeoutSeconds) }

type Services struct {
	ASR           Service `yaml:"asr" mapstructure:"asr"`
	Keywords      Service `yaml:"keywords" mapstructure:"keywords"`
	Feedback      Service `yaml:"feedback" mapstructure:"feedback"`
	Visualization Service `yaml:"visualization" mapstructure:"visualization"`
}

type Pipeline struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Version   string `yaml:"version" mapstructure:"version"`
	LogLevel  string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`
}

type CategoryWeights struct {
	Posture    float64 `yaml:"posture" mapstructure:"posture"`
	EyeContact float64 `yaml:"eye_contact" mapstructure:"eye_contact"`
	Speech     float64 `yaml:"speech" mapstructure:"speech"`
	Content    float64 `yaml:"content" mapstructure:"content"`
	Delivery   float64 `yaml:"delivery" mapstructure:"delivery"`
}

type SpeechWeights struct {
	WPM        float64 `yaml:"wpm" mapstructure:"wpm"`
	Filler     float64 `yaml:"filler_words" mapstructure:"filler_words"`
	Pauses     float64 `yaml:"pauses" mapstructure:"pauses"`
	Repetition float64 `yaml:"repetition" mapstructure:"repetition"`
	Grammar    float64 `yaml:"grammar" mapstructure:"grammar"`
}

type Scoring struct {
	CategoryWeights CategoryWeights `yaml:"category_weights" mapstructure:"category_weights"`
	SpeechWeights   SpeechWeights   `yaml:"speech_weights" mapstructure:"speech_weights"`
	MaxKeywords     int             `yaml:"max_keywords" mapstructure:"max_keywords"`
}

type Posture struct {
	FallbackDefaults bool    `yaml:"fallback_defaults" mapstructure:"fallback_defaults"`
	PostureGood      float64 `yaml:"posture_good" mapstructure:"posture_good"`
	PostureOkay      float64 `yaml:"posture_okay" mapstructure:"posture_okay"`
	EyeContactGood   float64 `yaml:"eye_contact_good" mapstructure:"eye_contact_good"`
	EyeContactOkay   float64 `yaml:"eye_contact_okay" mapstructure:"eye_contact_okay"`
}

type Realtime struct {
	PostureWindow     int     `yaml:"posture_window" mapstructure:"posture_window"`
	EyeContactWindow  int     `yaml:"eye_contact_window" mapstructure:"eye_contact_window"`
	FillerWindow      int     `yaml:"filler_window" mapstructure:"filler_window"`
	FeedbackHistory   int     `yaml:"feedback_history" mapstructure:"feedback_history"`
	TrendPoints       int     `yaml:"trend_points" mapstructure:"trend_points"`
	FillerProbability float64 `yaml:"filler_probability" mapstructure:"filler_probability"`
	Seed              int64   `yaml:"seed" mapstructure:"seed"`
	AutoStart         bool    `yaml:"auto_start" mapstructure:"auto_start"`
}

type Storage struct {
	Driver   string `yaml:"driver" mapstructure:"driver"`
	Path     string `yaml:"path" mapstructure:"path"`
	Compress bool   `yaml:"compress" mapstructure:"compress"`
}

type Paths struct {
	Outputs string `yaml:"outputs" mapstructure:"outputs"`
}

type Root struct {
	Pipeline Pipeline `yaml:"pipeline" mapstructure:"pipeline"`
	Services Services `yaml:"services" mapstructure:"services"`
	Scoring  Scoring  `yaml:"scoring" mapstructure:"scoring"`
	Posture  Posture  `yaml:"posture" mapstructure:"posture"`
	Realtime Realtime `yaml:"realtime" mapstructure:"realtime"`
	Storage  Storage  `yaml:"storage" mapstructure:"storage"`
	Paths    Paths    `yaml:"paths" mapstructure:"paths"`
}

func Default() *Root {
	w := scoring.DefaultWeights()
	pt := posture.DefaultThresholds()
	rt := realtime.DefaultOptions()
	svc := func(key string) Service {
		return Service{APIKeyEnv: EnvPrefix + "_" + key + "_API_KEY", TimeoutSeconds: 60}
	}
	return &Root{
		Pipeline: Pipeline{Name: "talkgenius", Version: "0.1.0", LogLevel: "info", LogFormat: "text"},
		Services: Services{
			ASR:           svc("ASR"),
			Keywords:      svc("KEYWORDS"),
			Feedback:      svc("FEEDBACK"),
			Visualization: svc("VISUALIZATION"),
		},
		Scoring: Scoring{
			CategoryWeights: CategoryWeights(w.Categories),
			SpeechWeights:   SpeechWeights(w.Speech),
			MaxKeywords:     10,
		},
		Posture: Posture{
			FallbackDefaults: true,
			PostureGood:      pt.PostureGood,
			PostureOkay:      pt.PostureOkay,
			EyeContactGood:   pt.EyeContactGood,
			EyeContactOkay:   pt.EyeContactOkay,
		},
		Realtime: Realtime{
			PostureWindow:     rt.PostureWindow,
			EyeContactWindow:  rt.EyeContactWindow,
			FillerWindow:      rt.FillerWindow,
			FeedbackHistory:   rt.FeedbackHistory,
			TrendPoints:       rt.TrendPoints,
			FillerProbability: 0.05,
		},
		Storage: Storage{Driver: "file", Path: filepath.Join("data", "reports")},
		Paths:   Paths{Outputs: "outputs"},
	}
}

// Load reads path, or when path is empty config/<CONFIG_ENV>/config.yaml
// and then ./config.yaml. A missing file is not an error; every key has a
// default and can be overridden from the environment.
func Load(path string) (*Root, error) {
	v := viper.New()
	if err := setDefaults(v, Default()); err != nil {
		return nil, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		env := os.Getenv("CONFIG_ENV")
		if env == "" {
			env = "dev"
		}
		if p := filepath.Join("config", env, "config.yaml"); fileExists(p) {
			path = p
		}
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every leaf of d under its dotted yaml key, which is
// what lets AutomaticEnv see keys that no file mentions.
func setDefaults(v *viper.Viper, d *Root) error {
	b, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode defaults: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return fmt.Errorf("decode defaults: %w", err)
	}
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, val := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := val.(map[string]any); ok {
				walk(key, sub)
				continue
			}
			v.SetDefault(key, val)
		}
	}
	walk("", m)
	return nil
}

// Write stores c as yaml at path, creating parent directories.
func Write(path string, c *Root) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func (c *Root) Validate() error {
	var errs []error
	cw := c.Scoring.CategoryWeights
	for name, w := range map[string]float64{
		"posture": cw.Posture, "eye_contact": cw.EyeContact, "speech": cw.Speech,
		"content": cw.Content, "delivery": cw.Delivery,
	} {
		if w < 0 {
			errs = append(errs, fmt.Errorf("scoring.category_weights.%s must not be negative", name))
		}
	}
	if cw.Posture+cw.EyeContact+cw.Speech+cw.Content+cw.Delivery <= 0 {
		errs = append(errs, errors.New("scoring.category_weights must not all be zero"))
	}
	sw := c.Scoring.SpeechWeights
	if sw.WPM < 0 || sw.Filler < 0 || sw.Pauses < 0 || sw.Repetition < 0 || sw.Grammar < 0 {
		errs = append(errs, errors.New("scoring.speech_weights must not be negative"))
	}
	switch strings.ToLower(c.Storage.Driver) {
	case "file", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q must be file or sqlite", c.Storage.Driver))
	}
	switch c.Pipeline.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("pipeline.log_format %q must be text or json", c.Pipeline.LogFormat))
	}
	if c.Realtime.PostureWindow < 1 || c.Realtime.EyeContactWindow < 1 || c.Realtime.FeedbackHistory < 1 {
		errs = append(errs, errors.New("realtime windows must be positive"))
	}
	if p := c.Realtime.FillerProbability; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("realtime.filler_probability %v must be within [0,1]", p))
	}
	return errors.Join(errs...)
}

func (c *Root) Weights() scoring.Weights {
	return scoring.Weights{
		Categories: scoring.CategoryWeights(c.Scoring.CategoryWeights),
		Speech:     scoring.SpeechWeights(c.Scoring.SpeechWeights),
	}
}

func (c *Root) PostureOptions() posture.Options {
	return posture.Options{
		FallbackDefaults: c.Posture.FallbackDefaults,
		Thresholds: posture.Thresholds{
			PostureGood:    c.Posture.PostureGood,
			PostureOkay:    c.Posture.PostureOkay,
			EyeContactGood: c.Posture.EyeContactGood,
			EyeContactOkay: c.Posture.EyeContactOkay,
		},
	}
}

func (c *Root) RealtimeOptions() realtime.Options {
	o := realtime.DefaultOptions()
	o.PostureWindow = c.Realtime.PostureWindow
	o.EyeContactWindow = c.Realtime.EyeContactWindow
	o.FillerWindow = c.Realtime.FillerWindow
	o.FeedbackHistory = c.Realtime.FeedbackHistory
	o.TrendPoints = c.Realtime.TrendPoints
	o.AutoStart = c.Realtime.AutoStart
	o.Signals = realtime.NewSimulatedSignals(c.Realtime.FillerProbability, c.Realtime.Seed)
	o.Thresholds.PostureGood = c.Posture.PostureGood
	o.Thresholds.PostureOkay = c.Posture.PostureOkay
	o.Thresholds.EyeContactGood = c.Posture.EyeContactGood
	o.Thresholds.EyeContactModerate = c.Posture.EyeContactOkay
	return o
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }
