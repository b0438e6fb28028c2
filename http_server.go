package main

import (
	"net"
	"net/http"
	"sync"

	log "github.com/sirupsen/logrus"
)

// HTTPServer serves the device/config REST API. Start and Stop may be
// called from different goroutines.
type HTTPServer struct {
	mu sync.Mutex
	ln net.Listener
}

func NewHTTPServer() *HTTPServer {
	return &HTTPServer{}
}

// Stop stops network listening
func (p *HTTPServer) Stop() {
	log.Info("Stopping HTTP server")
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ln != nil {
		_ = p.ln.Close()
		p.ln = nil
	}
}

// Start starts the HTTP API on listenAddr. startedCb is invoked once
// the listener is up.
func (p *HTTPServer) Start(listenAddr string, s *QServer, startedCb func()) {
	p.mu.Lock()
	if p.ln != nil {
		p.mu.Unlock()
		startedCb()
		return
	}
	p.mu.Unlock()

	handler := NewRestful(s).CreateHandler()
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		startedCb()
		log.WithFields(log.Fields{log.ErrorKey: err, "addr": listenAddr}).Fatal("Failed to listen on address")
		return
	}
	log.WithFields(log.Fields{"addr": listenAddr}).Info("Start http")
	p.mu.Lock()
	p.ln = listener
	p.mu.Unlock()
	startedCb()
	_ = http.Serve(listener, handler)
}
