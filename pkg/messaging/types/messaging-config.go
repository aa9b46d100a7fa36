package types

import "time"

const (
	MAIL_PROVIDER_RESEND   = "resend"
	MAIL_PROVIDER_SENDGRID = "sendgrid"
)

type MailProviderConfig struct {
	APIKey string `json:"api_key" yaml:"api_key"`
	// URL replaces the provider's public API root, e.g. to point dev
	// deployments at the mail gateway emulator.
	URL            string        `json:"url" yaml:"url"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

type MessagingConfigs struct {
	// Preferred provider name, empty to pick whichever has credentials.
	ProviderPreference string `json:"provider_preference" yaml:"provider_preference"`

	// Sender address used for all reminder mails.
	FromAddress string `json:"from_address" yaml:"from_address"`

	ResendConfig   MailProviderConfig `json:"resend" yaml:"resend"`
	SendgridConfig MailProviderConfig `json:"sendgrid" yaml:"sendgrid"`
}
