package aida

import (
	"net/url"
	"regexp"
	"strings"
)

var hasProtocolRe = regexp.MustCompile(`(?i)^https?://`)
var sessionsPathRe = regexp.MustCompile(`/sessions/.*$`)

// NormalizeGatewayURL cleans up gateway base URLs copied from the Aida UI:
// missing protocol, trailing slashes, session links and /config paths.
// Returns an empty string for unusable input.
func NormalizeGatewayURL(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	withProtocol := value
	if !hasProtocolRe.MatchString(value) {
		withProtocol = "https://" + value
	}

	parsed, err := url.Parse(withProtocol)
	if err != nil || parsed.Host == "" {
		return ""
	}

	pathname := strings.TrimRight(parsed.Path, "/")
	pathname = sessionsPathRe.ReplaceAllString(pathname, "")
	if pathname == "/config" {
		pathname = ""
	}

	return strings.TrimSuffix(parsed.Scheme+"://"+parsed.Host+pathname, "/")
}
