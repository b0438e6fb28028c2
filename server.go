package main

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/beamtime/qserverd/config"
	"github.com/beamtime/qserverd/devices"
)

// QServer serves the validated queue-server configuration and the
// device registry over HTTP.
type QServer struct {
	config   *config.Config
	registry *devices.Registry
	httpAddr string

	httpServer *HTTPServer
	startOnce  sync.Once
	stopOnce   sync.Once
	done       chan struct{}
}

// NewQServer creates the service around the given configuration file.
func NewQServer(configFile string, httpAddr string) *QServer {
	registry, err := devices.NewRegistry()
	if err != nil {
		// the registry schema is static, this only fires on a programming error
		log.WithFields(log.Fields{log.ErrorKey: err}).Fatal("unable to create device registry")
	}
	return &QServer{
		config:   config.NewConfig(configFile),
		registry: registry,
		httpAddr: httpAddr,
		done:     make(chan struct{}),
	}
}

// GetConfig returns the configuration being served.
func (s *QServer) GetConfig() *config.Config {
	return s.config
}

// GetRegistry returns the device registry.
func (s *QServer) GetRegistry() *devices.Registry {
	return s.registry
}

// Reload revalidates the configuration file and reloads the device
// registry from the existing plans and devices file. The first
// successful reload starts the HTTP API.
func (s *QServer) Reload() error {
	if err := s.config.Load(); err != nil {
		return err
	}
	log.SetLevel(s.config.GetLogLevel())

	if path := s.config.GetExistingPlansAndDevicesPath(); path != "" {
		if _, err := s.registry.LoadFile(path); err != nil {
			return err
		}
	}

	s.startOnce.Do(func() {
		s.httpServer = NewHTTPServer()
		go s.httpServer.Start(s.httpAddr, s, func() {})
	})
	return nil
}

// Stop shuts the HTTP API down.
func (s *QServer) Stop() {
	s.stopOnce.Do(func() {
		if s.httpServer != nil {
			s.httpServer.Stop()
		}
		close(s.done)
	})
}

// WaitForExit blocks until Stop is called.
func (s *QServer) WaitForExit() {
	<-s.done
}
