package version

import "fmt"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Short is the version cut down to fit the banner.
func Short() string {
	if len(Version) < 10 {
		return Version
	}
	return Version[:10]
}
