package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Storage StorageConfig `yaml:"storage" json:"storage"`
	Session SessionConfig `yaml:"session" json:"session"`
	Maps    []MapConfig   `yaml:"maps" json:"maps"`
}

type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port string `yaml:"port" json:"port"`
}

// Addr is the listen address
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type StorageConfig struct {
	Type        string `yaml:"type" json:"type"`
	File        string `yaml:"file" json:"file"`
	DatabaseURL string `yaml:"database_url" json:"database_url"`
}

type SessionConfig struct {
	PendingTimeout time.Duration `yaml:"pending_timeout" json:"pending_timeout"`
	AskTimeout     time.Duration `yaml:"ask_timeout" json:"ask_timeout"`
}

type MapConfig struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Width   int    `yaml:"width" json:"width"`
	Height  int    `yaml:"height" json:"height"`
	Terrain string `yaml:"terrain" json:"terrain"`
}

func DefaultMaps() []MapConfig {
	return []MapConfig{
		{ID: "map1", Name: "Green Plains", Width: 32, Height: 32, Terrain: "grass"},
		{ID: "map2", Name: "Dune Crossing", Width: 24, Height: 24, Terrain: "sand"},
		{ID: "map3", Name: "Frost Hollow", Width: 16, Height: 16, Terrain: "snow"},
	}
}

func (s *ServerConfig) ApplyDefaults() {
	if s.Port == "" {
		s.Port = "8080"
	}
}

func (s *StorageConfig) ApplyDefaults() {
	if s.Type == "" {
		s.Type = "json"
	}
	if s.File == "" {
		s.File = "db.json"
	}
	if s.DatabaseURL == "" {
		s.DatabaseURL = "host=localhost user=chickenfight password=chickenfight dbname=chickenfight sslmode=disable"
	}
}

func (s *SessionConfig) ApplyDefaults() {
	if s.PendingTimeout == 0 {
		s.PendingTimeout = 10 * time.Second
	}
	if s.AskTimeout == 0 {
		s.AskTimeout = 5 * time.Second
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Session.ApplyDefaults()
	if len(c.Maps) == 0 {
		c.Maps = DefaultMaps()
	}
	for i := range c.Maps {
		if c.Maps[i].Name == "" {
			c.Maps[i].Name = c.Maps[i].ID
		}
		if c.Maps[i].Terrain == "" {
			c.Maps[i].Terrain = "grass"
		}
	}
}

// ApplyEnv overrides file values with PORT, HOST, DB_TYPE, DATABASE_URL, DB_FILE
// and PENDING_TIMEOUT when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.Storage.Type = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.DatabaseURL = v
	}
	if v := os.Getenv("DB_FILE"); v != "" {
		c.Storage.File = v
	}
	if v := os.Getenv("PENDING_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("PENDING_TIMEOUT: %w", err)
		}
		c.Session.PendingTimeout = d
	}
	return nil
}

// parseDuration accepts Go durations and bare seconds
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Maps))
	for _, m := range c.Maps {
		if m.ID == "" {
			return errors.New("map without id")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate map id %q", m.ID)
		}
		seen[m.ID] = true
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("map %q: width and height must be positive", m.ID)
		}
	}
	switch c.Storage.Type {
	case "json", "postgres":
	default:
		return fmt.Errorf("unknown storage type %q", c.Storage.Type)
	}
	return nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	var r Config
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	r.ApplyDefaults()
	return &r, nil
}
