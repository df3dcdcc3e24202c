package main

import (
	"fmt"
	"os"

	"golang-recurrence-finder/cmd/recurrence/cmd"
)

// version is stamped by the linker on release builds
var version = "dev"

func main() {
	cmd.SetVersion(version)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
