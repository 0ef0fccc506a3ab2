package main

import (
	"os"

	"github.com/scare-emu/scare/go/cmd"
)

func main() {
	os.Exit(cmd.NewScareCmd().Run(os.Args))
}
