package main

import (
	"os"

	"github.com/abhisek/iotfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
