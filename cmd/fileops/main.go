package main

import (
	"fmt"
	"os"

	"github.com/babarot/fileops/internal/cli"
)

const appName = "fileops"

var (
	Version   = "unset"
	Revision  = "unset"
	BuildDate = "unset"
)

func main() {
	if err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   Version,
		Revision:  Revision,
		BuildDate: BuildDate,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s: %v\n", appName, err)
		os.Exit(1)
	}
}
