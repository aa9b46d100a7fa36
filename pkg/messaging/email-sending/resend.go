package emailsending

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
)

const (
	resendDefaultURL     = "https://api.resend.com"
	defaultSendTimeout   = 10 * time.Second
	sendEmailContentType = "application/json"
)

type resendSendReq struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

type resendSendResp struct {
	ID string `json:"id"`
}

func sendViaResend(cfg messagingTypes.MailProviderConfig, from string, to string, content messagingTypes.EmailContent) (*string, error) {
	payload := resendSendReq{
		From:    from,
		To:      []string{to},
		Subject: content.Subject,
		Text:    content.Text,
		HTML:    content.HTML,
	}

	json_data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := resendDefaultURL
	if cfg.URL != "" {
		url = cfg.URL
	}

	req, err := http.NewRequest(http.MethodPost, url+"/emails", bytes.NewBuffer(json_data))
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
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Error("resend returned error", slog.String("status", resp.Status))
		return nil, fmt.Errorf("resend returned %d", resp.StatusCode)
	}

	var res resendSendResp
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil || res.ID == "" {
		// A send that came back 2xx is still a send, id or not.
		return nil, nil
	}
	return &res.ID, nil
}

func sendTimeout(cfg messagingTypes.MailProviderConfig) time.Duration {
	if cfg.RequestTimeout > 0 {
		return cfg.RequestTimeout
	}
	return defaultSendTimeout
}
