package main

import (
	"os"

	"github.com/kuriftu/essence/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
