package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/beamtime/qserverd/config"
	"github.com/beamtime/qserverd/devices"
)

// ExportDevicesCommand writes the device export document for external
// integrations.
type ExportDevicesCommand struct {
	Output string `short:"o" long:"output" description:"the output file" default:"devices_qserverd.json"`
}

var exportDevicesCommand ExportDevicesCommand

// Execute loads the configuration, fills the device registry and
// writes the export document.
func (x ExportDevicesCommand) Execute(args []string) error {
	cfg := config.NewConfig(options.Configuration)
	if err := cfg.Load(); err != nil {
		return err
	}

	path := cfg.GetExistingPlansAndDevicesPath()
	if path == "" {
		return fmt.Errorf("startup.existing_plans_and_devices_path is not configured in %s", options.Configuration)
	}

	registry, err := devices.NewRegistry()
	if err != nil {
		return err
	}
	n, err := registry.LoadFile(path)
	if err != nil {
		return err
	}
	if err := registry.WriteExport(x.Output); err != nil {
		return err
	}
	log.WithFields(log.Fields{"devices": n, "file": x.Output}).Info("device export written")
	return nil
}

func init() {
	parser.AddCommand("export-devices",
		"export device definitions",
		"Export the device definitions from the existing plans and devices file as JSON.",
		&exportDevicesCommand)
}
