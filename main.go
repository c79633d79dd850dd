package main

import (
	"os"

	"github.com/yashogale30/rfp-responder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
