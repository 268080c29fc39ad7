package main

import (
	"fmt"
	"os"

	"perfbot/cmd"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		cmd.Usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "optimize":
		cmd.RunOptimize(os.Args[2:])
	case "compare":
		cmd.RunCompare(os.Args[2:])
	case "revert":
		cmd.RunRevert(os.Args[2:])
	case "history":
		cmd.RunHistory(os.Args[2:])
	case "--version":
		fmt.Println("perfbot", version)
	default:
		cmd.Usage()
		os.Exit(1)
	}
}
