package main

import (
	"os"

	"github.com/abhisek/daylingo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
