package main

import (
	"os"

	"github.com/pressplay21/katello-installer-legacy/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
