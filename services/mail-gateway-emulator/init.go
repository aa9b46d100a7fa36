package main

import (
	"log/slog"
	"os"

	"github.com/flytt-io/flytt-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"
	ENV_EMULATOR_API_KEY = "EMULATOR_API_KEY"
)

type MailGatewayEmulatorConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// API key expected in the Authorization header; empty disables the check
	ApiKey string `json:"api_key" yaml:"api_key"`

	// Directory the emulated mails are written to
	EmailsDir string `json:"emails_dir" yaml:"emails_dir"`
}

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(
		conf.Logging.LogLevel,
		conf.Logging.IncludeSrc,
		conf.Logging.LogToFile,
		conf.Logging.Filename,
		conf.Logging.MaxSize,
		conf.Logging.MaxAge,
		conf.Logging.MaxBackups,
		conf.Logging.CompressOldLogs,
	)

	// Override secrets from environment
	if apiKey := os.Getenv(ENV_EMULATOR_API_KEY); apiKey != "" {
		conf.ApiKey = apiKey
	}

	if conf.EmailsDir == "" {
		conf.EmailsDir = "emails"
	}

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	slog.Info("Mail gateway emulator configured", slog.String("emailsDir", conf.EmailsDir))
}
