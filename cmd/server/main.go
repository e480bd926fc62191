// Command server starts the rotation-tracking HTTP API.
package main

import (
	"context"
	"log"

	"github.com/rotalog/rotalog/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("run: %v", err)
	}
}
