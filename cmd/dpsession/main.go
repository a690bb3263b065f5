package main

import "github.com/BonEvil/DPSessionManager/internal/cli"

func main() {
	cli.Execute()
}
