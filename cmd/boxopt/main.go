// Package main is the boxopt command line tool.
//
// Usage:
//
//	boxopt compute 2
//	boxopt derive 2
//	boxopt render 2 --out box.gif
//	boxopt session
//	boxopt serve
package main

import (
	"os"

	"github.com/hapkiduki/boxopt/internal/interfaces/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
