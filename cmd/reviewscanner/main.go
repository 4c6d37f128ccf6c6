package main

import (
	"context"
	"os"

	"ReviewScanner/cmd/reviewscanner/commands"
)

func main() {
	os.Exit(commands.ExecuteContext(context.Background()))
}
