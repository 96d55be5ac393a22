// cmd/storectl/main.go
package main

import (
	"os"

	"github.com/your-org/storefront/internal/config"
)

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		os.Exit(1)
	}
}
