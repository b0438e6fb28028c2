package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// CtlCommand talks to the REST API of a running qserverd.
type CtlCommand struct {
	ServerURL string `short:"s" long:"serverurl" description:"URL on which the qserverd HTTP API is listening"`
}

type CtlStatusCommand struct {
}

type CtlReloadCommand struct {
}

type CtlDevicesCommand struct {
	Type string `short:"t" long:"type" description:"only show devices of this type"`
}

var ctlCommand CtlCommand
var ctlStatusCommand CtlStatusCommand
var ctlReloadCommand CtlReloadCommand
var ctlDevicesCommand CtlDevicesCommand

func (x *CtlCommand) getServerURL() string {
	if x.ServerURL != "" {
		return strings.TrimSuffix(x.ServerURL, "/")
	}
	return "http://" + options.HTTPAddr
}

func (x *CtlCommand) get(path string, result interface{}) error {
	resp, err := http.Get(x.getServerURL() + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(result)
}

// Execute dispatches the ctl verbs given as plain arguments, as in
// "qserverd ctl status".
func (x *CtlCommand) Execute(args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch verb := args[0]; verb {
	case "status":
		x.status()
	case "reload":
		x.reload()
	case "devices":
		x.listDevices("")
	default:
		fmt.Println("unknown command")
	}

	return nil
}

func (x *CtlCommand) status() {
	var reply StatusResponse
	if err := x.get("/status", &reply); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("service:      %s\n", reply.Service)
	fmt.Printf("config file:  %s\n", reply.ConfigFile)
	fmt.Printf("devices:      %d\n", reply.DeviceCount)
	fmt.Printf("device types: %s\n", strings.Join(reply.DeviceTypes, ", "))
}

func (x *CtlCommand) reload() {
	resp, err := http.Post(x.getServerURL()+"/reload", "application/json", nil)
	if err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var reply struct {
		Success     bool   `json:"success"`
		Reason      string `json:"reason"`
		DeviceCount int    `json:"device_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	if !reply.Success {
		fmt.Printf("reload failed: %s\n", reply.Reason)
		os.Exit(1)
	}
	fmt.Printf("reloaded, %d devices\n", reply.DeviceCount)
}

func (x *CtlCommand) listDevices(deviceType string) {
	path := "/devices"
	if deviceType != "" {
		path += "?type=" + deviceType
	}

	var reply DeviceListResponse
	if err := x.get(path, &reply); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}
	for name, def := range reply.Devices {
		fmt.Printf("%-33s%-10s%s\n", name, def.DeviceType, def.DeviceClass)
	}
}

func (sc *CtlStatusCommand) Execute(args []string) error {
	ctlCommand.status()
	return nil
}

func (rc *CtlReloadCommand) Execute(args []string) error {
	ctlCommand.reload()
	return nil
}

func (dc *CtlDevicesCommand) Execute(args []string) error {
	ctlCommand.listDevices(dc.Type)
	return nil
}

func init() {
	ctlCmd, _ := parser.AddCommand("ctl",
		"Control a running daemon",
		"The ctl subcommand talks to the HTTP API of a running qserverd.",
		&ctlCommand)
	ctlCmd.AddCommand("status",
		"show the service status",
		"show the service status",
		&ctlStatusCommand)
	ctlCmd.AddCommand("reload",
		"reload the configuration",
		"revalidate the configuration and reload the device registry",
		&ctlReloadCommand)
	ctlCmd.AddCommand("devices",
		"list registered devices",
		"list all or some registered devices",
		&ctlDevicesCommand)
}
