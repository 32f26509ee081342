package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPageSize     = 10
	defaultMaxImageSize = 5 << 20 // 5MB
)

type Config struct {
	CfgDB           ConfigDB      `yaml:"db"`
	CfgES           ConfigES      `yaml:"es"`
	CfgRedis        ConfigRedis   `yaml:"redis"`
	CfgKafka        ConfigKafka   `yaml:"kafka"`
	CfgS3           ConfigS3      `yaml:"s3"`
	ETLInterval     time.Duration `yaml:"etl_interval"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxConns        int           `yaml:"max_conns"`
	Secret          string        `yaml:"secret"`
	ServerPort      string        `yaml:"srv_port"`
	SessionDuration time.Duration `yaml:"session_duration"`
	PageSize        int           `yaml:"page_size"`
	MaxImageSize    int64         `yaml:"max_image_size"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

type ConfigDB struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
	Port     uint   `yaml:"port"`
	Database string `yaml:"database"`
	Host     string `yaml:"host"`
}

// DSN - строка подключения для lib/pq
func (c ConfigDB) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s "+"password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Login, c.Password, c.Database,
	)
}

type ConfigES struct {
	Addresses []string `yaml:"addresses"`
	Index     string   `yaml:"index"`
}

type ConfigRedis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ConfigKafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	GroupID string   `yaml:"group_id"`
}

type ConfigS3 struct {
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	PublicURL      string `yaml:"public_url"`
	ForcePathStyle bool   `yaml:"force_path_style"`
}

// NewConfig читает yaml, затем перекрывает секреты из .env и окружения
func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	if err = LoadEnv(); err != nil {
		return nil, err
	}
	c.applyEnv()
	c.applyDefaults()

	return &c, nil
}

// LoadEnv подгружает .env, если он есть; уже выставленные переменные не трогает
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_PASSWORD":   &c.CfgDB.Password,
		"JWT_SECRET":    &c.Secret,
		"S3_ACCESS_KEY": &c.CfgS3.AccessKey,
		"S3_SECRET_KEY": &c.CfgS3.SecretKey,
	}
	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.MaxImageSize <= 0 {
		c.MaxImageSize = defaultMaxImageSize
	}
	if c.SessionDuration <= 0 {
		c.SessionDuration = 24 * time.Hour
	}
	if c.ETLInterval <= 0 {
		c.ETLInterval = time.Minute
	}
}
