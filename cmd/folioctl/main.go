package main

import "github.com/the-dev-tools/folio/internal/cli"

func main() {
	cli.Execute()
}
