// wslpath2 converts paths between WSL and Windows formats by running
// wslpath through wsl.exe.
package main

import (
	"os"

	"github.com/sverrirab/wslpath2/internal/cli"
)

var version = "dev"

func main() {
	cli.Version = version
	os.Exit(cli.Run(os.Args[1:], os.Stdout, os.Stderr))
}
