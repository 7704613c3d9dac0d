package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		// Path to the catalog JSON, relative to the data dir unless absolute.
		Path string `yaml:"path" json:"path"`
	} `yaml:"catalog" json:"catalog"`

	Storage struct {
		Backend  string `yaml:"backend" json:"backend"` // sqlite | redis | memory
		RedisURL string `yaml:"redis_url" json:"redis_url"`
	} `yaml:"storage" json:"storage"`

	API struct {
		// Token-bucket guard for the localhost API; zero disables it.
		RateLimitPerSec float64 `yaml:"rate_limit_per_sec" json:"rate_limit_per_sec"`
		RateLimitBurst  int     `yaml:"rate_limit_burst" json:"rate_limit_burst"`
	} `yaml:"api" json:"api"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
