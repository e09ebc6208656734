package main

import (
	"os"

	"github.com/solatis/quietrepr/cmd/quietrepr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
