package main

import (
	"fmt"
)

// Version is the version of qserverd
const Version = "v0.3"

// VersionCommand prints the version.
type VersionCommand struct {
}

var versionCommand VersionCommand

// Execute executes the version command
func (v VersionCommand) Execute(args []string) error {
	fmt.Println(Version)
	return nil
}

func init() {
	parser.AddCommand("version",
		"show the version of qserverd",
		"display the qserverd version",
		&versionCommand)
}
