package main

import (
	"fmt"
	"os"

	"github.com/kobzarvs/visionary/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		fmt.Fprintln(os.Stderr, "visionary:", err)
		os.Exit(1)
	}
}
