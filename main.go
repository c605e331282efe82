package main

import (
	"os"

	"github.com/dsilva/studium/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
