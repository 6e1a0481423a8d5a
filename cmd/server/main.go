package main

import (
	"fmt"
	"os"

	"github.com/zarandamon/usd-mercury-pipeline/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}
	defer a.Log.Sync()

	if err := a.Run(); err != nil {
		a.Log.Fatal("server exited", "error", err)
	}
}
