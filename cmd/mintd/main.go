package main

import (
	"github.com/mintforge/goMintd/internal/cli"
	_ "github.com/mintforge/goMintd/internal/core/tx/all"
)

func main() {
	cli.Execute()
}
