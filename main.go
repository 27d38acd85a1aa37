package main

import "github.com/cdinu/mcp-energy/cmd"

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
