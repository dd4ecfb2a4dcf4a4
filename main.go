// Package main is the entry point for the covreduct CLI.
package main

import "covreduct.dev/pkg/covreduct/cmd"

func main() {
	cmd.Execute()
}
