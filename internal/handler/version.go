package handler

import (
	"encoding/json"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
)

// Version is injected at build time via
// -ldflags "-X .../internal/handler.Version=v1.2.3"; the CASKWATCH_VERSION
// environment variable overrides it for container deployments.
var Version = "dev"

// VersionInfo describes the running build.
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	VCSCommit string `json:"vcs_commit,omitempty"`
}

// HandleVersion returns build information for deployment verification.
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := VersionInfo{
			Service:   "caskwatch",
			Version:   resolveVersion(),
			GoVersion: runtime.Version(),
			VCSCommit: vcsCommit(),
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(info)
	}
}

func resolveVersion() string {
	if env := os.Getenv("CASKWATCH_VERSION"); env != "" {
		return env
	}
	return Version
}

// vcsCommit pulls the commit hash stamped into the binary, when built from a
// checkout.
func vcsCommit() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return ""
}
