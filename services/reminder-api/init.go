package main

import (
	"os"

	"github.com/flytt-io/flytt-backend/pkg/aida"
	"github.com/flytt-io/flytt-backend/pkg/db"
	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
	"github.com/flytt-io/flytt-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_MOVE_DATA_DB_USERNAME    = "MOVE_DATA_DB_USERNAME"
	ENV_MOVE_DATA_DB_PASSWORD    = "MOVE_DATA_DB_PASSWORD"
	ENV_REMINDER_LOG_DB_USERNAME = "REMINDER_LOG_DB_USERNAME"
	ENV_REMINDER_LOG_DB_PASSWORD = "REMINDER_LOG_DB_PASSWORD"

	ENV_CRON_SECRET      = "CRON_SECRET"
	ENV_RESEND_API_KEY   = "RESEND_API_KEY"
	ENV_SENDGRID_API_KEY = "SENDGRID_API_KEY"

	ENV_REMINDER_EMAIL_FROM      = "REMINDER_EMAIL_FROM"
	ENV_REMINDER_EMAIL_PROVIDER  = "REMINDER_EMAIL_PROVIDER"
	ENV_REMINDER_USE_AIDA        = "REMINDER_USE_AIDA"
	ENV_OPENCLAW_GATEWAY_URL     = "OPENCLAW_GATEWAY_URL"
	ENV_OPENCLAW_GATEWAY_TOKEN   = "OPENCLAW_GATEWAY_TOKEN"
	ENV_OPENCLAW_AGENT_ID        = "OPENCLAW_AGENT_ID"
	ENV_DEEPSEEK_API_KEY         = "DEEPSEEK_API_KEY"
)

type ReminderApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`
	} `json:"gin_config" yaml:"gin_config"`

	// "production" switches the dry-run default to off.
	Environment string `json:"environment" yaml:"environment"`

	// Shared secret expected from the external scheduler; empty disables auth.
	CronSecret string `json:"cron_secret" yaml:"cron_secret"`

	// DB configs
	DBConfigs struct {
		MoveDataDB    db.DBConfigYaml `json:"move_data_db" yaml:"move_data_db"`
		ReminderLogDB db.DBConfigYaml `json:"reminder_log_db" yaml:"reminder_log_db"`
	} `json:"db_configs" yaml:"db_configs"`

	MessagingConfigs messagingTypes.MessagingConfigs `json:"messaging_configs" yaml:"messaging_configs"`

	AidaConfigs struct {
		// Enabled unless this is exactly "false".
		UseAida  string              `json:"use_aida" yaml:"use_aida"`
		Gateway  aida.GatewayConfig  `json:"gateway" yaml:"gateway"`
		Deepseek aida.DeepseekConfig `json:"deepseek" yaml:"deepseek"`
	} `json:"aida_configs" yaml:"aida_configs"`
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

	// Override secrets from environment variables
	secretsOverride()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_MOVE_DATA_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.MoveDataDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_MOVE_DATA_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.MoveDataDB.Password = dbPassword
	}

	if dbUsername := os.Getenv(ENV_REMINDER_LOG_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.ReminderLogDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_REMINDER_LOG_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.ReminderLogDB.Password = dbPassword
	}

	if cronSecret := os.Getenv(ENV_CRON_SECRET); cronSecret != "" {
		conf.CronSecret = cronSecret
	}

	if apiKey := os.Getenv(ENV_RESEND_API_KEY); apiKey != "" {
		conf.MessagingConfigs.ResendConfig.APIKey = apiKey
	}

	if apiKey := os.Getenv(ENV_SENDGRID_API_KEY); apiKey != "" {
		conf.MessagingConfigs.SendgridConfig.APIKey = apiKey
	}

	if from := os.Getenv(ENV_REMINDER_EMAIL_FROM); from != "" {
		conf.MessagingConfigs.FromAddress = from
	}

	if preference := os.Getenv(ENV_REMINDER_EMAIL_PROVIDER); preference != "" {
		conf.MessagingConfigs.ProviderPreference = preference
	}

	if useAida := os.Getenv(ENV_REMINDER_USE_AIDA); useAida != "" {
		conf.AidaConfigs.UseAida = useAida
	}

	if gatewayURL := os.Getenv(ENV_OPENCLAW_GATEWAY_URL); gatewayURL != "" {
		conf.AidaConfigs.Gateway.URL = gatewayURL
	}

	if gatewayToken := os.Getenv(ENV_OPENCLAW_GATEWAY_TOKEN); gatewayToken != "" {
		conf.AidaConfigs.Gateway.Token = gatewayToken
	}

	if agentID := os.Getenv(ENV_OPENCLAW_AGENT_ID); agentID != "" {
		conf.AidaConfigs.Gateway.AgentID = agentID
	}

	if apiKey := os.Getenv(ENV_DEEPSEEK_API_KEY); apiKey != "" {
		conf.AidaConfigs.Deepseek.APIKey = apiKey
	}
}
