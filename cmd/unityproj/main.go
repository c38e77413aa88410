package main

import (
	"fmt"
	"os"

	"github.com/LeLocTai/unityhub-launcher/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
