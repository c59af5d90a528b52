package main

import (
	"os"

	"github.com/reddycharan348/Gate-Exam/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
