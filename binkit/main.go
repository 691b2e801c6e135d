package main

import (
	"os"

	"github.com/Doomsbay/BinKit/binkit/cmd"
)

func main() {
	cmd.Execute(os.Args[1:])
}
