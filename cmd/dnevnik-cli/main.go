package main

import (
	"context"
	"dnevnik-client/cmd/dnevnik-cli/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
