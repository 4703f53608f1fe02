// keykit is a command-line tool for HD key derivation, Curve25519
// conversion and Shamir secret sharing.
package main

import (
	"os"

	"github.com/mrv777/ardor-keykit/cmd/keykit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
