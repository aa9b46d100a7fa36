package emailsending

import (
	"fmt"
	"strings"

	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
)

// Router selects one configured transactional mail provider and sends
// through it. Resolution happens once at construction: an explicit
// preference wins, otherwise whichever provider has a credential is used,
// Resend first when both are configured.
type Router struct {
	configs  messagingTypes.MessagingConfigs
	provider string
	missing  []string
}

func NewRouter(configs messagingTypes.MessagingConfigs) *Router {
	router := &Router{configs: configs}
	router.provider, router.missing = resolveProvider(configs)
	return router
}

func resolveProvider(configs messagingTypes.MessagingConfigs) (provider string, missing []string) {
	requested := strings.ToLower(strings.TrimSpace(configs.ProviderPreference))
	hasResend := configs.ResendConfig.APIKey != ""
	hasSendgrid := configs.SendgridConfig.APIKey != ""

	switch requested {
	case messagingTypes.MAIL_PROVIDER_RESEND:
		if hasResend {
			return messagingTypes.MAIL_PROVIDER_RESEND, nil
		}
		return "", []string{"RESEND_API_KEY"}
	case messagingTypes.MAIL_PROVIDER_SENDGRID:
		if hasSendgrid {
			return messagingTypes.MAIL_PROVIDER_SENDGRID, nil
		}
		return "", []string{"SENDGRID_API_KEY"}
	}

	if hasResend {
		return messagingTypes.MAIL_PROVIDER_RESEND, nil
	}
	if hasSendgrid {
		return messagingTypes.MAIL_PROVIDER_SENDGRID, nil
	}
	return "", []string{"RESEND_API_KEY or SENDGRID_API_KEY"}
}

// Provider returns the resolved provider name, empty when none is configured.
func (router *Router) Provider() string {
	return router.provider
}

// MissingCredentials names the credential(s) that prevented provider
// resolution, empty when a provider is available.
func (router *Router) MissingCredentials() []string {
	return router.missing
}

// From returns the configured sender address.
func (router *Router) From() string {
	return router.configs.FromAddress
}

// Send delivers one mail through the resolved provider and returns the
// provider-assigned message id, if any.
func (router *Router) Send(to string, content messagingTypes.EmailContent) (*string, error) {
	switch router.provider {
	case messagingTypes.MAIL_PROVIDER_RESEND:
		return sendViaResend(router.configs.ResendConfig, router.configs.FromAddress, to, content)
	case messagingTypes.MAIL_PROVIDER_SENDGRID:
		return sendViaSendgrid(router.configs.SendgridConfig, router.configs.FromAddress, to, content)
	default:
		return nil, fmt.Errorf("no mail provider configured, missing: %s", strings.Join(router.missing, ", "))
	}
}
