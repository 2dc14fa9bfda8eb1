package main

import (
	"os"

	"github.com/arnavshah/sandwich-orders-api/cmd/ordersctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
