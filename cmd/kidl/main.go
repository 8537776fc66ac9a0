// Command kidl is the KIDL language server and schema checker.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(newGlobalState()).Execute(); err != nil {
		os.Exit(1)
	}
}
