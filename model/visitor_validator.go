package model

import (
	"fmt"
	"net"
	"strings"

	"go.uber.org/multierr"
)

type validator struct {
	err error
}

func (v *validator) Err() error {
	return v.err
}

func (v *validator) Visit(node Node) Visitor {
	switch n := node.(type) {
	case *Network:
		v.checkZmqAddr("network.zmq_control_addr", n.ZmqControlAddr)
		v.checkZmqAddr("network.zmq_info_addr", n.ZmqInfoAddr)
		v.checkHostPort("network.redis_addr", n.RedisAddr)

	case *Worker:
		v.checkPort("worker.ipython_shell_port", n.IpythonShellPort)
		v.checkPort("worker.ipython_iopub_port", n.IpythonIopubPort)
		v.checkPort("worker.ipython_stdin_port", n.IpythonStdinPort)
		v.checkPort("worker.ipython_hb_port", n.IpythonHbPort)
		v.checkPort("worker.ipython_control_port", n.IpythonControlPort)

	case *Startup:
		if n.DeviceMaxDepth < 0 {
			multierr.AppendInto(&v.err, fmt.Errorf("startup.device_max_depth must not be negative, got %d", n.DeviceMaxDepth))
		}

	case *RunEngine:
		v.checkHostPort("run_engine.kafka_server", n.KafkaServer)
		v.checkZmqAddr("run_engine.zmq_data_proxy_addr", n.ZmqDataProxyAddr)
	}

	return v
}

func (v *validator) checkZmqAddr(path, addr string) {
	if len(addr) == 0 {
		return
	}
	if !strings.HasPrefix(addr, "tcp://") && !strings.HasPrefix(addr, "ipc://") {
		multierr.AppendInto(&v.err, fmt.Errorf("%s: address %q must use the tcp:// or ipc:// transport", path, addr))
	}
}

func (v *validator) checkHostPort(path, addr string) {
	if len(addr) == 0 {
		return
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		multierr.AppendInto(&v.err, fmt.Errorf("%s: address %q is not host:port: %w", path, addr, err))
	}
}

func (v *validator) checkPort(path string, port int) {
	if port < 0 || port > 65535 {
		multierr.AppendInto(&v.err, fmt.Errorf("%s: port %d out of range", path, port))
	}
}

// Validate applies the semantic checks that go beyond the document
// shape. Shape violations are the schema package's concern.
func Validate(m *Root) error {
	var v validator
	Walk(&v, m)
	return v.Err()
}
