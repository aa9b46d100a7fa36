package aida

import "testing"

func TestNormalizeGatewayURL(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain host", "gateway.example.com", "https://gateway.example.com"},
		{"keeps explicit http", "http://localhost:8080", "http://localhost:8080"},
		{"trailing slash", "https://gateway.example.com/", "https://gateway.example.com"},
		{"multiple trailing slashes", "https://gateway.example.com///", "https://gateway.example.com"},
		{"strips session link", "https://gateway.example.com/sessions/abc-123", "https://gateway.example.com"},
		{"strips config path", "https://gateway.example.com/config", "https://gateway.example.com"},
		{"keeps other paths", "https://gateway.example.com/proxy", "https://gateway.example.com/proxy"},
		{"whitespace only", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeGatewayURL(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
