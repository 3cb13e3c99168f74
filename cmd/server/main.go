// Command server runs the schedule HTTP API.
package main

import (
	"context"
	"log"

	"github.com/mkulagin/fencing-club-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
