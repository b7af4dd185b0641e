package main

import (
	"os"

	"github.com/bnema/slack-now-playing/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
