// Command infinitelist runs the paged list demo.
package main

import (
	"fmt"
	"os"

	"github.com/richkazz/infinitelist/internal/cli"
	"github.com/richkazz/infinitelist/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
