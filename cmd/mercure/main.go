// Command mercure runs an embedded Mercure hub and offers helpers to mint
// tokens, publish updates and listen to a hub from the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
