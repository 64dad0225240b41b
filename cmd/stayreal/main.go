package main

import (
	"os"

	"stayreal/cmd/stayreal/commands"
)

func main() {
	os.Exit(commands.Execute())
}
