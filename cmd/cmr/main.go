// Command cmr is the conflict merge resolver CLI.
package main

import (
	"os"

	"github.com/kilupskalvis/cmr/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
