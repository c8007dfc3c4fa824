// Package version holds the application version, overridden at build time with
//
//	-ldflags "-X github.com/ndewijer/Stock-Lot-Ledger/internal/version.Version=1.2.3"
package version

// Version is the running application version.
var Version = "dev"
