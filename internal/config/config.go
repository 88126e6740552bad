package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DB     DBConfig
	Server ServerConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Upload UploadConfig
	Cache  CacheConfig
	Logger LoggerConfig
}

type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type ServerConfig struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	BodyLimitMB    int
	AllowedOrigins string
	RateLimit      int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type JWTConfig struct {
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type UploadConfig struct {
	Dir               string
	AllowedExtensions []string
}

type CacheConfig struct {
	TTL time.Duration
}

// LoggerConfig selects the zap encoder and level.
type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults() {
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", 3306)
	viper.SetDefault("db.user", "techcom")
	viper.SetDefault("db.name", "techcom")
	viper.SetDefault("db.max_open_conns", 25)
	viper.SetDefault("db.max_idle_conns", 10)
	viper.SetDefault("db.conn_max_lifetime", 300)

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.body_limit_mb", 100)
	viper.SetDefault("server.allowed_origins", "*")
	viper.SetDefault("server.rate_limit", 120)

	viper.SetDefault("jwt.access_token_ttl", "15m")
	viper.SetDefault("jwt.refresh_token_ttl", "168h")

	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.allowed_extensions",
		[]string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt", ".mp4", ".mov", ".avi", ".mkv", ".webm"})

	viper.SetDefault("cache.ttl", "10m")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		viper.AddConfigPath("../../")
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	setDefaults()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		DB: DBConfig{
			Host:            viper.GetString("db.host"),
			Port:            viper.GetInt("db.port"),
			User:            viper.GetString("db.user"),
			Password:        viper.GetString("db.password"),
			DBName:          viper.GetString("db.name"),
			MaxOpenConns:    viper.GetInt("db.max_open_conns"),
			MaxIdleConns:    viper.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: viper.GetDuration("db.conn_max_lifetime") * time.Second,
		},
		Server: ServerConfig{
			Port:           viper.GetInt("server.port"),
			ReadTimeout:    viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout:   viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimitMB:    viper.GetInt("server.body_limit_mb"),
			AllowedOrigins: viper.GetString("server.allowed_origins"),
			RateLimit:      viper.GetInt("server.rate_limit"),
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			SecretKey:       viper.GetString("jwt.secret_key"),
			AccessTokenTTL:  viper.GetDuration("jwt.access_token_ttl"),
			RefreshTokenTTL: viper.GetDuration("jwt.refresh_token_ttl"),
		},
		Upload: UploadConfig{
			Dir:               viper.GetString("upload.dir"),
			AllowedExtensions: viper.GetStringSlice("upload.allowed_extensions"),
		},
		Cache: CacheConfig{
			TTL: viper.GetDuration("cache.ttl"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	if config.JWT.SecretKey == "" {
		return nil, fmt.Errorf("jwt.secret_key must be set")
	}

	return config, nil
}

func (c *Config) mysqlConfig() *mysql.Config {
	mc := mysql.NewConfig()
	mc.User = c.DB.User
	mc.Passwd = c.DB.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.DB.Host, strconv.Itoa(c.DB.Port))
	mc.DBName = c.DB.DBName
	mc.ParseTime = true
	mc.Loc = time.UTC
	mc.Collation = "utf8mb4_unicode_ci"
	mc.ClientFoundRows = true
	return mc
}

// GetDSN returns the go-sql-driver/mysql DSN for the configured database.
func (c *Config) GetDSN() string {
	return c.mysqlConfig().FormatDSN()
}

// GetMigrateDSN returns the golang-migrate URL; migrations need multiStatements.
func (c *Config) GetMigrateDSN() string {
	mc := c.mysqlConfig()
	mc.MultiStatements = true
	return "mysql://" + mc.FormatDSN()
}
