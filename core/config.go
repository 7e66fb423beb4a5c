package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Debug        bool
		AppName      string
		Build        string
		RollbarToken string
		Storage      StorageConfig
		Server       ServerConfig
	}

	StorageConfig struct {
		Engine string // bolt | sqlite | memory
		Path   string
		Bucket string
		Key    string
	}

	ServerConfig struct {
		Host            string
		ShutdownTimeout time.Duration
	}
)

// Storage engines
const (
	EngineBolt   = "bolt"
	EngineSQLite = "sqlite"
	EngineMemory = "memory"
)

const DefaultStorageKey = "attendify_data"

// NewConfig loads the configuration from defaults, an optional attendify.yaml,
// an optional config/.env.<env> file and the environment (in that order of precedence).
func NewConfig() *Config {
	env := strings.ToUpper(CleanString(os.Getenv("ATTENDIFY_ENV"))) // DEV (default), TEST, PROD
	if env == "" {
		env = strings.ToUpper(CleanString(os.Getenv("ENV")))
	}
	if env == "" {
		env = "DEV"
	}

	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env != "PROD")
	conf.SetDefault("appName", "Attendify")
	conf.SetDefault("build", "develop")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("storage.engine", EngineBolt)
	conf.SetDefault("storage.path", filepath.Join(configDir(), "attendify.db"))
	conf.SetDefault("storage.bucket", "attendify")
	conf.SetDefault("storage.key", DefaultStorageKey)
	conf.SetDefault("server.host", "127.0.0.1:8017")
	conf.SetDefault("server.shutdownTimeout", 5*time.Second)
	if env == "TEST" {
		conf.SetDefault("storage.engine", EngineMemory)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	// optional config file
	conf.SetConfigName("attendify")
	conf.SetConfigType("yaml")
	conf.AddConfigPath(".")
	conf.AddConfigPath(configDir())
	if err := conf.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("config.ReadInConfig(): %v", err)
		}
	}

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	return &Config{
		Env:          env,
		Debug:        conf.GetBool("debug"),
		AppName:      conf.GetString("appName"),
		Build:        conf.GetString("build"),
		RollbarToken: conf.GetString("rollbarToken"),
		Storage: StorageConfig{
			Engine: strings.ToLower(conf.GetString("storage.engine")),
			Path:   conf.GetString("storage.path"),
			Bucket: conf.GetString("storage.bucket"),
			Key:    conf.GetString("storage.key"),
		},
		Server: ServerConfig{
			Host:            conf.GetString("server.host"),
			ShutdownTimeout: conf.GetDuration("server.shutdownTimeout"),
		},
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "attendify")
}
