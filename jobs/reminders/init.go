package main

import (
	"log/slog"
	"os"

	"github.com/flytt-io/flytt-backend/pkg/aida"
	"github.com/flytt-io/flytt-backend/pkg/db"
	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
	"github.com/flytt-io/flytt-backend/pkg/utils"
	"github.com/joho/godotenv"
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

	ENV_RESEND_API_KEY   = "RESEND_API_KEY"
	ENV_SENDGRID_API_KEY = "SENDGRID_API_KEY"

	ENV_REMINDER_EMAIL_FROM     = "REMINDER_EMAIL_FROM"
	ENV_REMINDER_EMAIL_PROVIDER = "REMINDER_EMAIL_PROVIDER"
	ENV_REMINDER_USE_AIDA       = "REMINDER_USE_AIDA"
	ENV_OPENCLAW_GATEWAY_URL    = "OPENCLAW_GATEWAY_URL"
	ENV_OPENCLAW_GATEWAY_TOKEN  = "OPENCLAW_GATEWAY_TOKEN"
	ENV_OPENCLAW_AGENT_ID       = "OPENCLAW_AGENT_ID"
	ENV_DEEPSEEK_API_KEY        = "DEEPSEEK_API_KEY"
)

type ReminderJobConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// "production" switches the dry-run default to off.
	Environment string `json:"environment" yaml:"environment"`

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

	RunConfigs struct {
		LookaheadDays int `json:"lookahead_days" yaml:"lookahead_days"`
		// "true"/"false"; empty falls back to the environment default
		DryRun string `json:"dry_run" yaml:"dry_run"`
		// Cron expression; empty runs the job once and exits
		Schedule string `json:"schedule" yaml:"schedule"`
	} `json:"run_configs" yaml:"run_configs"`
}

var conf ReminderJobConfig

func init() {
	// Load local .env before reading overrides, convenient for dev runs
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", slog.String("error", err.Error()))
	}

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
