package emailsending

import (
	"testing"

	messagingTypes "github.com/flytt-io/flytt-backend/pkg/messaging/types"
)

func TestResolveProvider(t *testing.T) {
	withKeys := func(resend, sendgrid, preference string) messagingTypes.MessagingConfigs {
		configs := messagingTypes.MessagingConfigs{ProviderPreference: preference}
		configs.ResendConfig.APIKey = resend
		configs.SendgridConfig.APIKey = sendgrid
		return configs
	}

	testCases := []struct {
		name            string
		configs         messagingTypes.MessagingConfigs
		expectedName    string
		expectedMissing []string
	}{
		{
			name:         "resend picked when only resend configured",
			configs:      withKeys("rk", "", ""),
			expectedName: messagingTypes.MAIL_PROVIDER_RESEND,
		},
		{
			name:         "sendgrid picked when only sendgrid configured",
			configs:      withKeys("", "sk", ""),
			expectedName: messagingTypes.MAIL_PROVIDER_SENDGRID,
		},
		{
			name:         "resend wins when both configured",
			configs:      withKeys("rk", "sk", ""),
			expectedName: messagingTypes.MAIL_PROVIDER_RESEND,
		},
		{
			name:         "preference overrides default order",
			configs:      withKeys("rk", "sk", "sendgrid"),
			expectedName: messagingTypes.MAIL_PROVIDER_SENDGRID,
		},
		{
			name:         "preference is case insensitive",
			configs:      withKeys("rk", "sk", " SendGrid "),
			expectedName: messagingTypes.MAIL_PROVIDER_SENDGRID,
		},
		{
			name:            "preferred provider without key reports its credential",
			configs:         withKeys("", "sk", "resend"),
			expectedMissing: []string{"RESEND_API_KEY"},
		},
		{
			name:            "no keys at all",
			configs:         withKeys("", "", ""),
			expectedMissing: []string{"RESEND_API_KEY or SENDGRID_API_KEY"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider, missing := resolveProvider(tc.configs)
			if provider != tc.expectedName {
				t.Errorf("expected provider %q, got %q", tc.expectedName, provider)
			}
			if len(missing) != len(tc.expectedMissing) {
				t.Fatalf("expected missing %v, got %v", tc.expectedMissing, missing)
			}
			for i := range missing {
				if missing[i] != tc.expectedMissing[i] {
					t.Errorf("expected missing %v, got %v", tc.expectedMissing, missing)
				}
			}
		})
	}
}

func TestRouterSendWithoutProvider(t *testing.T) {
	router := NewRouter(messagingTypes.MessagingConfigs{})
	_, err := router.Send("anna@example.com", messagingTypes.EmailContent{Subject: "s", Text: "t"})
	if err == nil {
		t.Error("expected error when no provider configured")
	}
}
