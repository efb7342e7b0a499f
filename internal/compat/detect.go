package compat

import "strings"

// Headers carries the request metadata the classifier inspects.
type Headers struct {
	APIVersion    string // X-Api-Version
	AppVersion    string // App-Version
	UserAgent     string
	Authorization string
}

// User-agent substrings of historical mobile builds that predate the
// versioned API header.
var legacyAgentTokens = []string{
	"haulpro-android",
	"haulpro-ios",
	"fleettrack/1",
	"okhttp/3",
}

// A rule maps request metadata to a format descriptor. Returning false
// passes evaluation to the next rule.
type rule func(Headers) (ClientFormat, bool)

// Precedence is the order of this slice, first match wins.
var rules = []rule{
	matchExplicitVersion,
	matchAppVersion,
	matchLegacyAgent,
	matchBearerFallback,
}

// Detect classifies the caller. It never fails: requests matching no rule
// get the current descriptor.
func Detect(h Headers) ClientFormat {
	for _, r := range rules {
		if format, ok := r(h); ok {
			return format
		}
	}
	return Current
}

func matchExplicitVersion(h Headers) (ClientFormat, bool) {
	if h.APIVersion == "" {
		return ClientFormat{}, false
	}
	switch h.APIVersion {
	case "v1", "1":
		return Legacy, true
	case "v2", "2":
		return V2, true
	default:
		return Current, true
	}
}

func matchAppVersion(h Headers) (ClientFormat, bool) {
	// Only legacy app builds ever sent App-Version; the value is irrelevant.
	if h.AppVersion == "" {
		return ClientFormat{}, false
	}
	return Legacy, true
}

func matchLegacyAgent(h Headers) (ClientFormat, bool) {
	if h.UserAgent == "" {
		return ClientFormat{}, false
	}
	agent := strings.ToLower(h.UserAgent)
	for _, token := range legacyAgentTokens {
		if strings.Contains(agent, token) {
			return Legacy, true
		}
	}
	return ClientFormat{}, false
}

// An authenticated request with no other signal is assumed to come from a
// pre-existing client. This misclassifies current clients that authenticate
// without identifying themselves; kept as-is for compatibility.
func matchBearerFallback(h Headers) (ClientFormat, bool) {
	if h.Authorization == "" {
		return ClientFormat{}, false
	}
	return Legacy, true
}
