package main

import (
	"os"

	"github.com/ZaneDavis9616/jlptn1/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
