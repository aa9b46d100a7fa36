package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	mw "github.com/flytt-io/flytt-backend/pkg/apihelpers/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *HttpEndpoints) AddRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(mw.HasValidBearerKey(h.apiKey))
	{
		// transactional mail API shapes the reminder sender talks to
		auth.POST("/emails",
			mw.RequirePayload(),
			h.sendResendEmail)
		auth.POST("/v3/mail/send",
			mw.RequirePayload(),
			h.sendSendgridEmail)
	}
}

type ResendEmailReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

type SendgridEmailReq struct {
	Personalizations []struct {
		To []struct {
			Email string `json:"email"`
		} `json:"to"`
	} `json:"personalizations"`
	From struct {
		Email string `json:"email"`
	} `json:"from"`
	Subject string `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

func (h *HttpEndpoints) sendResendEmail(c *gin.Context) {
	var req ResendEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.To) < 1 {
		slog.Error("missing 'to' field")
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'to' field"})
		return
	}

	body := req.HTML
	if body == "" {
		body = "<pre>" + req.Text + "</pre>"
	}
	if err := h.saveEmailAsHtml(req.To, req.Subject, body); err != nil {
		slog.Error("Email could not be saved into HTML file(s)", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Email could not be saved into HTML file(s)"})
		return
	}

	messageID := uuid.New().String()
	slog.Info("Email has been saved into HTML file(s)", slog.String("messageId", messageID))
	c.JSON(http.StatusOK, gin.H{"id": messageID})
}

func (h *HttpEndpoints) sendSendgridEmail(c *gin.Context) {
	var req SendgridEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Failed to bind request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipients := []string{}
	for _, p := range req.Personalizations {
		for _, to := range p.To {
			if to.Email != "" {
				recipients = append(recipients, to.Email)
			}
		}
	}
	if len(recipients) < 1 {
		slog.Error("missing recipients in personalizations")
		c.JSON(http.StatusBadRequest, gin.H{"errors": []gin.H{{"message": "missing recipients in personalizations"}}})
		return
	}

	body := ""
	for _, content := range req.Content {
		if content.Type == "text/html" {
			body = content.Value
		}
		if body == "" && content.Type == "text/plain" {
			body = "<pre>" + content.Value + "</pre>"
		}
	}

	if err := h.saveEmailAsHtml(recipients, req.Subject, body); err != nil {
		slog.Error("Email could not be saved into HTML file(s)", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"errors": []gin.H{{"message": "Email could not be saved into HTML file(s)"}}})
		return
	}

	messageID := uuid.New().String()
	slog.Info("Email has been saved into HTML file(s)", slog.String("messageId", messageID))
	c.Header("X-Message-Id", messageID)
	c.Status(http.StatusAccepted)
}

func (h *HttpEndpoints) saveEmailAsHtml(recipients []string, subject string, content string) error {
	for _, recipient := range recipients {
		folderPath := filepath.Join(h.emailsDir, recipient)
		if err := os.MkdirAll(folderPath, os.ModePerm); err != nil {
			slog.Error("Error creating folder for recipient", slog.String("recipient", recipient), slog.String("error", err.Error()))
			return err
		}

		htmlFilePath, err := getUniqueHTMLFilePath(folderPath, subject)
		if err != nil {
			slog.Error("Error generating HTML file path", slog.String("recipient", recipient), slog.String("error", err.Error()))
			return err
		}

		if err := os.WriteFile(htmlFilePath, []byte(content), 0644); err != nil {
			slog.Error("Error writing HTML file for "+recipient, slog.String("error", err.Error()))
			return err
		}

		slog.Info("Saved email for '" + recipient + "' as " + htmlFilePath)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]+`)

// generates a valid file name for the HTML file based on the subject.
func getHTMLFilename(subject string) string {
	name := unsafeFilenameChars.ReplaceAllString(subject, "_")
	if name == "" {
		name = "email"
	}
	return name + ".html"
}

// returns a unique file path for the HTML file, appending a counter if needed.
func getUniqueHTMLFilePath(folderPath, subject string) (string, error) {
	baseFileName := getHTMLFilename(subject)
	htmlFilePath := filepath.Join(folderPath, baseFileName)
	counter := 1

	for {
		if _, err := os.Stat(htmlFilePath); errors.Is(err, os.ErrNotExist) {
			break
		}
		baseName := filepath.Base(htmlFilePath)
		ext := filepath.Ext(htmlFilePath)
		baseNameWithoutExt := baseName[:len(baseName)-len(ext)]

		htmlFilePath = filepath.Join(folderPath, baseNameWithoutExt+"_"+strconv.Itoa(counter)+".html")
		counter++
	}

	return htmlFilePath, nil
}
