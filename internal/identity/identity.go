package identity

import (
	"strings"
)

const (
	BrandName = "ETerm"
	// AppSlug is the canonical identifier for user-facing and on-disk state.
	// It intentionally matches the only supported CLI binary name.
	AppSlug = "eterm"
	CLIName = "eterm"

	GlobalConfigFile = "config.yml"

	// SessionFileName is the primary snapshot file inside the session dir.
	SessionFileName = "session.json"
	SessionDirName  = "sessions"
)

var (
	InputAliases = []string{"et"}
)

func IsCLICommandToken(token string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(token))
	if trimmed == "" {
		return false
	}
	if trimmed == CLIName {
		return true
	}
	for _, alias := range InputAliases {
		if trimmed == alias {
			return true
		}
	}
	return false
}
