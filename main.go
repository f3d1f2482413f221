package main

import (
	"os"

	"github.com/abhisek/quirk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
