package main

import (
	"os"

	"github.com/AnyUserName/fraster-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
