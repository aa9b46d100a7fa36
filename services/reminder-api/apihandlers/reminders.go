package apihandlers

import (
	"log/slog"
	"net/http"
	"regexp"
	"time"

	mw "github.com/flytt-io/flytt-backend/pkg/apihelpers/middlewares"
	"github.com/flytt-io/flytt-backend/pkg/reminders"
	"github.com/gin-gonic/gin"
)

var isoDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (h *HttpEndpoints) AddReminderAPI(rg *gin.RouterGroup) {
	remindersGroup := rg.Group("/reminders")
	remindersGroup.Use(mw.HasValidCronSecret(h.cronSecret))
	{
		remindersGroup.GET("", h.runReminders)
		remindersGroup.GET("/logs", h.getReminderLogs)
	}
}

// parseDryRun resolves the dryRun query parameter. Unless the caller is
// explicit, anything but a production deployment stays in dry-run mode.
func (h *HttpEndpoints) parseDryRun(raw string) bool {
	switch raw {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return h.environment != "production"
	}
}

func (h *HttpEndpoints) runReminders(c *gin.Context) {
	lookaheadDays := reminders.ParseLookaheadDays(c.Query("lookaheadDays"))
	dryRun := h.parseDryRun(c.Query("dryRun"))

	summary, err := h.dispatcher.Run(c.Request.Context(), reminders.RunOptions{
		Today:         time.Now().UTC(),
		LookaheadDays: lookaheadDays,
		DryRun:        dryRun,
	})
	if err != nil {
		slog.Error("Reminder run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var provider interface{}
	if summary.Provider != "" {
		provider = summary.Provider
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":            true,
		"runId":         summary.RunID,
		"dryRun":        summary.DryRun,
		"lookaheadDays": summary.LookaheadDays,
		"window":        summary.Window,
		"provider":      provider,
		"counts":        summary.Counts,
		"processed":     summary.Processed,
		"durationMs":    summary.DurationMs,
	})
}

func (h *HttpEndpoints) getReminderLogs(c *gin.Context) {
	date := c.DefaultQuery("date", reminders.ToISODate(time.Now().UTC()))
	if !isoDateRegex.MatchString(date) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	logs, err := h.reminderLogDB.GetReminderLogsByDate(date)
	if err != nil {
		slog.Error("Failed to fetch reminder logs", slog.String("date", date), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to fetch reminder logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "date": date, "logs": logs})
}
