package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"

	"go.uber.org/zap"
)

// usernamePattern follows GitHub's rules: alphanumerics separated by single
// hyphens, no hyphen at either end.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9])*$`)

const maxUsernameLength = 39

// ValidUsername reports whether name can be a GitHub login.
func ValidUsername(name string) bool {
	return len(name) > 0 && len(name) <= maxUsernameLength && usernamePattern.MatchString(name)
}

// writeJSONError writes a JSON error response
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("JSONエンコードエラー", zap.Error(err))
	}
}
