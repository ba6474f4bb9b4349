package main

import (
	"context"
	"os"

	"github.com/cleared-dev/glclean/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
