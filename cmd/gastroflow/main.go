// Package main provides the entry point for the gastroflow CLI tool.
package main

import "github.com/gastroflow/gastroflow/cmd/gastroflow/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd.Execute(version, commit, date)
}
