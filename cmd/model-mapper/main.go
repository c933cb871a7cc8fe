// Package main provides the CLI entrypoint for model-mapper.
//
// model-mapper reads model declarations from a YAML file and uses them to:
//   - Convert documents between XML, JSON, YAML and TOML
//   - Validate documents against the declared constraints
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
