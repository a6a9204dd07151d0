package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/riadafridishibly/diskviz/cmd"
)

func main() {
	// Walker pools default to GOMAXPROCS; apply container CPU quotas first.
	_, _ = maxprocs.Set()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
