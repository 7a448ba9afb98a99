package main

import (
	"os"

	"github.com/packlint/packlint/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
