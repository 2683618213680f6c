package version

// Version is the application version, set at build time with
// -ldflags "-X github.com/rxtech-lab/argo-strategy-lab/internal/version.Version=1.2.3".
// "main" marks a development build.
var Version = "main"

// SchemaVersion is the version written with every stored strategy. Bump the
// minor version when StrategyConfig gains or changes a field.
const SchemaVersion = "1.0.0"

// GetVersion returns the application version.
func GetVersion() string {
	return Version
}
