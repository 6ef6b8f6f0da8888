package main

import (
	"os"

	"github.com/splicelang/splice/cli"
)

func main() {
	os.Exit(cli.Execute())
}
