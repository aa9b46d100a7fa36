package apihandlers

import (
	"net/http"

	"github.com/flytt-io/flytt-backend/pkg/db/reminderlogs"
	"github.com/flytt-io/flytt-backend/pkg/reminders"
	"github.com/gin-gonic/gin"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	dispatcher    *reminders.Dispatcher
	reminderLogDB *reminderlogs.ReminderLogDBService
	cronSecret    string
	environment   string
}

func NewHTTPHandler(
	dispatcher *reminders.Dispatcher,
	reminderLogDB *reminderlogs.ReminderLogDBService,
	cronSecret string,
	environment string,
) *HttpEndpoints {
	return &HttpEndpoints{
		dispatcher:    dispatcher,
		reminderLogDB: reminderLogDB,
		cronSecret:    cronSecret,
		environment:   environment,
	}
}
