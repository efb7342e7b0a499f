package compat

import "strings"

// Transform rewrites a decoded JSON object body into the shape the
// classified client expects. It is a pure function and idempotent: feeding
// its own output back in returns an identical body.
func Transform(body map[string]any, format ClientFormat, path string) map[string]any {
	if body == nil {
		return body
	}

	// Errors always report failure, whatever the descriptor says.
	if errVal, ok := body["error"]; ok {
		normalized := map[string]any{
			"success": false,
			"error":   errVal,
		}
		if msg, ok := body["message"]; ok {
			normalized["message"] = msg
		}
		return normalized
	}

	switch format.Kind {
	case KindV2:
		return transformV2(body, format)
	case KindLegacy:
		return transformLegacy(body, format, path)
	default:
		return body
	}
}

func transformV2(body map[string]any, format ClientFormat) map[string]any {
	if !format.WrapInData {
		return body
	}
	if _, ok := body["data"]; ok {
		return body
	}
	return wrap(body)
}

func transformLegacy(body map[string]any, format ClientFormat, path string) map[string]any {
	_, hasSuccess := body["success"]
	_, hasData := body["data"]
	if hasSuccess && hasData {
		return body
	}

	if isCredentialPath(path) {
		if user, token, ok := credentialFields(body); ok {
			return map[string]any{
				"success": true,
				"data":    map[string]any{"user": user, "token": token},
			}
		}
	}

	if isCurrentUserPath(path) {
		if _, ok := body["user"]; ok {
			return body
		}
	}

	if format.WrapInData {
		return wrap(body)
	}
	return body
}

// credentialFields finds the user/token pair at the top level or nested one
// level under an existing data envelope.
func credentialFields(body map[string]any) (any, any, bool) {
	if user, ok := body["user"]; ok {
		if token, ok := body["token"]; ok {
			return user, token, true
		}
	}
	if data, ok := body["data"].(map[string]any); ok {
		if user, ok := data["user"]; ok {
			if token, ok := data["token"]; ok {
				return user, token, true
			}
		}
	}
	return nil, nil, false
}

func isCredentialPath(path string) bool {
	return strings.Contains(path, "/login") || strings.Contains(path, "/register")
}

func isCurrentUserPath(path string) bool {
	return strings.Contains(path, "/me")
}

func wrap(body map[string]any) map[string]any {
	return map[string]any{"success": true, "data": body}
}
