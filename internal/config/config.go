package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr              string        `yaml:"addr"`
	JwtTTL            time.Duration `yaml:"jwt_ttl"`
	SecureCookies     bool          `yaml:"secure_cookies"`
	SeedAnnouncements bool          `yaml:"seed_announcements"`

	TitleMaxLen   int `yaml:"title_max_len"`
	SlugMaxLen    int `yaml:"slug_max_len"`
	SummaryMaxLen int `yaml:"summary_max_len"`
	AuthorMaxLen  int `yaml:"author_max_len"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

// applyEnvOverrides lets deployment environments (and .env files loaded
// in main) override secrets without editing private.yaml.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Private.JwtKey = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Private.Pg.Password = v
	}
	if v := os.Getenv("PG_HOST"); v != "" {
		c.Private.Pg.Host = v
	}
}

func (c *Config) applyDefaults() {
	if c.Public.Addr == "" {
		c.Public.Addr = ":8080"
	}
	if c.Public.TitleMaxLen == 0 {
		c.Public.TitleMaxLen = 150
	}
	if c.Public.SlugMaxLen == 0 {
		c.Public.SlugMaxLen = 180
	}
	if c.Public.SummaryMaxLen == 0 {
		c.Public.SummaryMaxLen = 280
	}
	if c.Public.AuthorMaxLen == 0 {
		c.Public.AuthorMaxLen = 80
	}
	if c.Public.JwtTTL == 0 {
		c.Public.JwtTTL = 24 * time.Hour
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}
