package main

import (
	"os"

	"github.com/labrecord/backend/cmd/labrec/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
