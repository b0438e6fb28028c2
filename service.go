package main

import (
	"fmt"

	"github.com/kardianos/service"
	log "github.com/sirupsen/logrus"
)

// ServiceCommand install/uninstall/start/stop qserverd as a system
// service
type ServiceCommand struct {
}

var serviceCommand ServiceCommand

type program struct{}

func (p *program) Start(s service.Service) error {
	go p.run()
	return nil
}

func (p *program) run() {}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Return with a few seconds.
	return nil
}

// Execute implements the flags.Commander interface, executes the given
// service action
func (sc ServiceCommand) Execute(args []string) error {
	if len(args) == 0 {
		showServiceUsage()
		return nil
	}

	serviceArgs := make([]string, 0)
	if options.Configuration != "" {
		serviceArgs = append(serviceArgs, "--configuration="+options.Configuration)
	}
	if options.EnvFile != "" {
		serviceArgs = append(serviceArgs, "--env-file="+options.EnvFile)
	}
	if options.HTTPAddr != "" {
		serviceArgs = append(serviceArgs, "--http-addr="+options.HTTPAddr)
	}

	svcConfig := &service.Config{
		Name:        "qserverd",
		DisplayName: "qserverd",
		Description: "Queue server configuration service",
		Arguments:   serviceArgs,
	}
	prg := &program{}
	s, err := service.New(prg, svcConfig)
	if err != nil {
		log.Error("service init failed", err)
		return err
	}

	action := args[0]
	switch action {
	case "install":
		err := s.Install()
		if err != nil {
			log.Error("Failed to install service qserverd: ", err)
			fmt.Println("Failed to install service qserverd: ", err)
			return err
		}
		fmt.Println("Succeed to install service qserverd")
	case "uninstall":
		s.Stop()
		err := s.Uninstall()
		if err != nil {
			log.Error("Failed to uninstall service qserverd: ", err)
			fmt.Println("Failed to uninstall service qserverd: ", err)
			return err
		}
		fmt.Println("Succeed to uninstall service qserverd")
	case "start":
		err := s.Start()
		if err != nil {
			log.Error("Failed to start service: ", err)
			fmt.Println("Failed to start service: ", err)
			return err
		}
		fmt.Println("Succeed to start service qserverd")
	case "stop":
		err := s.Stop()
		if err != nil {
			log.Error("Failed to stop service: ", err)
			fmt.Println("Failed to stop service: ", err)
			return err
		}
		fmt.Println("Succeed to stop service qserverd")

	default:
		showServiceUsage()
	}

	return nil
}

func showServiceUsage() {
	fmt.Println("usage: qserverd service install/uninstall/start/stop")
}

func init() {
	parser.AddCommand("service",
		"install/uninstall/start/stop service",
		"install/uninstall/start/stop service",
		&serviceCommand)
}
