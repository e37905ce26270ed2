package version

// Set at build time with -ldflags "-X github.com/Layr-Labs/slotledger/internal/version.Version=..."
var (
	Version = "unreleased"
	Commit  = "unknown"
)

func GetVersion() string {
	return Version
}

func GetCommit() string {
	return Commit
}
