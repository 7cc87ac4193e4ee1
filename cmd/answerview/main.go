package main

import (
	"fmt"
	"os"

	"github.com/mithrel/answerview/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "answerview:", err)
		os.Exit(1)
	}
}
