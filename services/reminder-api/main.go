package main

import (
	"log/slog"
	"time"

	"github.com/flytt-io/flytt-backend/pkg/aida"
	"github.com/flytt-io/flytt-backend/pkg/apihelpers"
	"github.com/flytt-io/flytt-backend/pkg/db"
	"github.com/flytt-io/flytt-backend/pkg/db/movedata"
	"github.com/flytt-io/flytt-backend/pkg/db/reminderlogs"
	emailsending "github.com/flytt-io/flytt-backend/pkg/messaging/email-sending"
	"github.com/flytt-io/flytt-backend/pkg/reminders"
	"github.com/flytt-io/flytt-backend/services/reminder-api/apihandlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var conf ReminderApiConfig

func main() {
	moveDataDBService, err := movedata.NewMoveDataDBService(db.DBConfigFromYamlObj(conf.DBConfigs.MoveDataDB))
	if err != nil {
		slog.Error("Error connecting to Move Data DB", slog.String("error", err.Error()))
		return
	}

	reminderLogDBService, err := reminderlogs.NewReminderLogDBService(db.DBConfigFromYamlObj(conf.DBConfigs.ReminderLogDB))
	if err != nil {
		slog.Error("Error connecting to Reminder Log DB", slog.String("error", err.Error()))
		return
	}

	dispatcher := reminders.NewDispatcher(
		reminders.NewSelector(moveDataDBService),
		reminderLogDBService,
		emailsending.NewRouter(conf.MessagingConfigs),
		newAidaContentSource(),
	)

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length"},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	apiModule := apihandlers.NewHTTPHandler(
		dispatcher,
		reminderLogDBService,
		conf.CronSecret,
		conf.Environment,
	)
	apiModule.AddReminderAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "reminder-api-routes.txt")
	}

	slog.Info("Starting Reminder API on port " + conf.GinConfig.Port)
	err = router.Run(":" + conf.GinConfig.Port)
	if err != nil {
		slog.Error("Exited Reminder API", slog.String("error", err.Error()))
		return
	}
}

// newAidaContentSource picks the completion backend: the Aida gateway when
// configured, otherwise DeepSeek directly, otherwise AI restyling stays off.
func newAidaContentSource() *reminders.AidaContentSource {
	enabled := conf.AidaConfigs.UseAida == "" || conf.AidaConfigs.UseAida == "true"

	gatewayClient := aida.NewGatewayClient(conf.AidaConfigs.Gateway)
	if gatewayClient.IsConfigured() {
		return reminders.NewAidaContentSource(gatewayClient, enabled)
	}

	if conf.AidaConfigs.Deepseek.APIKey != "" {
		deepseekClient, err := aida.NewDeepseekClient(conf.AidaConfigs.Deepseek)
		if err != nil {
			slog.Error("Error creating DeepSeek client, AI content disabled", slog.String("error", err.Error()))
			return reminders.NewAidaContentSource(nil, false)
		}
		return reminders.NewAidaContentSource(deepseekClient, enabled)
	}

	slog.Info("No completion backend configured, reminders use deterministic content only")
	return reminders.NewAidaContentSource(nil, false)
}
