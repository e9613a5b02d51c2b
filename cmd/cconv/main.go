// cconv is a CLI tool that converts country names and codes between classification schemes.
package main

import (
	"github.com/hightemp/cconv/internal/cli"
)

// Build information (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.BuildTime = buildTime
	cli.Execute()
}
