package analytics

import (
	"os"

	"adboard/internal/app"

	"gopkg.in/yaml.v3"
)

const defaultPort = "8082"

type Config struct {
	CfgDB        app.ConfigDB    `yaml:"db"`
	CfgKafka     app.ConfigKafka `yaml:"kafka"`
	MaxOpenConns int             `yaml:"max_open_conns"`
	ServerPort   string          `yaml:"srv_port"`
}

func NewConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}

	if err := app.LoadEnv(); err != nil {
		return nil, err
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.CfgDB.Password = v
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = defaultPort
	}

	return &cfg, nil
}
