package main

import (
	"os"

	"github.com/lamalux/pricing/cmd/pricingctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
