// Command dynq evaluates physical quantity expressions.
package main

import (
	"os"

	"github.com/leapstack-labs/dynq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
