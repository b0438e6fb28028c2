package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/beamtime/qserverd/pkg/env"
)

type Options struct {
	Configuration string `short:"c" long:"configuration" description:"the configuration file" default:"qserverd.yml"`
	EnvFile       string `long:"env-file" description:"environment file loaded before reading the configuration"`
	HTTPAddr      string `long:"http-addr" description:"listen address of the device/config HTTP API" default:"localhost:60610"`
	Daemon        bool   `short:"d" long:"daemon" description:"run as daemon"`
}

func init() {
	log.SetOutput(os.Stdout)
	if runtime.GOOS == "windows" {
		log.SetFormatter(&log.TextFormatter{DisableColors: true, FullTimestamp: true})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableColors: false, FullTimestamp: true})
	}
	log.SetLevel(log.InfoLevel)
}

func initSignals(s *QServer) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigs {
			if sig == syscall.SIGHUP {
				log.WithFields(log.Fields{"signal": sig}).Info("receive a signal to reload the configuration")
				if err := s.Reload(); err != nil {
					log.WithFields(log.Fields{log.ErrorKey: err}).Error("reload failed, keeping previous configuration")
				}
				continue
			}
			log.WithFields(log.Fields{"signal": sig}).Info("receive a signal to stop the service & exit")
			s.Stop()
			os.Exit(0)
		}
	}()
}

func loadEnvFile() {
	if len(options.EnvFile) == 0 {
		return
	}

	kvs, err := env.ReadFile(options.EnvFile)
	if err != nil {
		log.WithFields(log.Fields{log.ErrorKey: err, "file": options.EnvFile}).Error("Failed to read environment file")
		return
	}
	for _, kv := range kvs {
		if err := os.Setenv(kv.Key, kv.Value); err != nil {
			log.WithFields(log.Fields{log.ErrorKey: err, "key": kv.Key}).Error("Failed to set environment variable")
		}
	}
}

var options Options
var parser = flags.NewParser(&options, flags.Default & ^flags.PrintErrors)

func RunServer() {
	s := NewQServer(options.Configuration, options.HTTPAddr)
	initSignals(s)
	if err := s.Reload(); err != nil {
		log.WithFields(log.Fields{log.ErrorKey: err}).Fatal("invalid configuration")
	}
	s.WaitForExit()
}

func main() {
	if _, err := parser.Parse(); err != nil {
		flagsErr, ok := err.(*flags.Error)
		if ok {
			switch flagsErr.Type {
			case flags.ErrHelp:
				fmt.Fprintln(os.Stdout, err)
				os.Exit(0)
			case flags.ErrCommandRequired:
				loadEnvFile()
				if options.Daemon {
					Daemonize(RunServer)
				} else {
					RunServer()
				}
			default:
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	}
}
