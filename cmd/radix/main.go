// Command radix converts numbers between bases and evaluates exact
// arithmetic on them, from the command line or as a TCP/HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/govalues/radix/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
