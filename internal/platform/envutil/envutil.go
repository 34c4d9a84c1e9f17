package envutil

import (
	"os"
	"strings"
)

// String returns the trimmed value of name, or def when it is unset or blank.
func String(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

// Bool understands the usual on/off spellings; anything else yields def.
func Bool(name string, def bool) bool {
	switch strings.ToLower(String(name, "")) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}
