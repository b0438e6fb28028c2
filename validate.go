package main

import (
	"fmt"
	"os"

	"github.com/beamtime/qserverd/config"
)

// ValidateCommand checks a configuration file against the schema and
// reports every violation.
type ValidateCommand struct {
}

var validateCommand ValidateCommand

// Execute validates the file given as argument, or the file from the
// --configuration option.
func (v ValidateCommand) Execute(args []string) error {
	path := options.Configuration
	if len(args) > 0 {
		path = args[0]
	}

	err := config.ValidateFile(path)
	if err == nil {
		fmt.Printf("%s: configuration is valid\n", path)
		return nil
	}

	for _, e := range config.Violations(err) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, e)
	}
	os.Exit(1)
	return nil
}

func init() {
	parser.AddCommand("validate",
		"validate a configuration file",
		"Validate a configuration file against the qserverd schema and list every violation.",
		&validateCommand)
}
