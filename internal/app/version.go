package app

import "fmt"

// Set via -ldflags "-X github.com/heartmarshall/storyline-backend/internal/app.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns the version line printed at startup.
func BuildVersion() string {
	return fmt.Sprintf("storyline %s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
