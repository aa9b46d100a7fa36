package emailsending

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
)

const sendgridDefaultURL = "https://api.sendgrid.com"

type sendgridAddress struct {
	Email string `json:"email"`
}

type sendgridPersonalization struct {
	To []sendgridAddress `json:"to"`
}

type sendgridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sendgridSendReq struct {
	Personalizations []sendgridPersonalization `json:"personalizations"`
	From             sendgridAddress           `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendgridContent         `json:"content"`
}

func sendViaSendgrid(cfg messagingTypes.MailProviderConfig, from string, to string, content messagingTypes.EmailContent) (*string, error) {
	payload := sendgridSendReq{
		Personalizations: []sendgridPersonalization{
			{To: []sendgridAddress{{Email: to}}},
		},
		From:    sendgridAddress{Email: from},
		Subject: content.Subject,
		Content: []sendgridContent{
			{Type: "text/plain", Value: content.Text},
			{Type: "text/html", Value: content.HTML},
		},
	}

	json_data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := sendgridDefaultURL
	if cfg.URL != "" {
		url = cfg.URL
	}

	req, err := http.NewRequest(http.MethodPost, url+"/v3/mail/send", bytes.NewBuffer(json_data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", sendEmailContentType)
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	client := &http.Client{Timeout: sendTimeout(cfg)}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("sendgrid returned error", slog.String("status", resp.Status))
		return nil, fmt.Errorf("sendgrid returned %d", resp.StatusCode)
	}

	messageID := resp.Header.Get("X-Message-Id")
	if messageID == "" {
		return nil, nil
	}
	return &messageID, nil
}
