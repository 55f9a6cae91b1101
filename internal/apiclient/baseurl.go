package apiclient

import (
	"fmt"
	"strings"
)

// LocalBaseURL is used when neither an override nor a codespace name is set.
const LocalBaseURL = "http://localhost:8000"

// ResolveBaseURL picks the API root: an explicit override wins, then the
// forwarded port 8000 of the named codespace, then the local default.
func ResolveBaseURL(override, codespaceName string) string {
	if override = strings.TrimSpace(override); override != "" {
		return strings.TrimRight(override, "/")
	}
	if codespaceName = strings.TrimSpace(codespaceName); codespaceName != "" {
		return fmt.Sprintf("https://%s-8000.app.github.dev", codespaceName)
	}
	return LocalBaseURL
}
