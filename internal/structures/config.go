package structures

import (
	"net/http"
	"time"
)

type Server struct {
	Host           string   `yaml:"host" validate:"required"`
	Port           int      `yaml:"port" validate:"required|uint|min:1"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Endpoints overrides upstream base URLs. Empty values fall back to the
// public hosts of each platform.
type Endpoints struct {
	CodeChef             string `yaml:"codeChef"`
	CodeChefProfile      string `yaml:"codeChefProfile"`
	Codeforces           string `yaml:"codeforces"`
	LeetCode             string `yaml:"leetCode"`
	GeeksforGeeks        string `yaml:"geeksforgeeks"`
	GeeksforGeeksProfile string `yaml:"geeksforgeeksProfile"`
	HackerRank           string `yaml:"hackerRank"`
	AtCoder              string `yaml:"atCoder"`
	GitHub               string `yaml:"gitHub"`
}

type SourcesConfig struct {
	HttpTimeout    time.Duration `yaml:"httpTimeout" validate:"required|min:1"`
	AdapterTimeout time.Duration `yaml:"adapterTimeout" validate:"required|min:1"`
	RetryAttempts  int           `yaml:"retryAttempts" validate:"required|min:1"`
	RetryBaseDelay time.Duration `yaml:"retryBaseDelay"`
	UserAgent      string        `yaml:"userAgent"`
	GithubToken    string        `yaml:"githubToken"`
	Endpoints      Endpoints     `yaml:"endpoints"`
}

type StoreConfig struct {
	Driver      string `yaml:"driver" validate:"required|in:memory,redis,postgres"`
	RedisUrl    string `yaml:"redisUrl"`
	PostgresDsn string `yaml:"postgresDsn"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Sources     SourcesConfig `yaml:"sources"`
	Store       StoreConfig   `yaml:"store"`
}

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
}

type Route struct {
	Method  string
	Url     string
	Handler http.Handler
}
