package config

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/beamtime/qserverd/model"
)

// environmentExpansion expands "$VAR" and "%(here)s" style references
// in the path-valued fields of a document.
type environmentExpansion struct {
	se *StringExpression
}

func (e environmentExpansion) Visit(node model.Node) model.Visitor {
	switch n := node.(type) {
	case *model.Startup:
		n.ExistingPlansAndDevicesPath = e.expand(n.ExistingPlansAndDevicesPath)
		n.UserGroupPermissionsPath = e.expand(n.UserGroupPermissionsPath)
		n.IpythonDir = e.expand(n.IpythonDir)
		n.StartupDir = e.expand(n.StartupDir)
		n.StartupScript = e.expand(n.StartupScript)

	case *model.Worker:
		n.IpythonConnectionFile = e.expand(n.IpythonConnectionFile)
		n.IpythonConnectionDir = e.expand(n.IpythonConnectionDir)

	case *model.RunEngine:
		n.DatabrokerConfig = e.expand(n.DatabrokerConfig)
	}

	return e
}

func (e environmentExpansion) expand(s string) string {
	if s == "" {
		return s
	}
	s = os.ExpandEnv(s)
	r, err := e.se.Eval(s)
	if err != nil {
		log.WithFields(log.Fields{log.ErrorKey: err, "value": s}).Warn("Unable to expand expression")
		return s
	}
	return r
}

// ExpandEnv expands environment references in the path fields of m.
// The variable "here" refers to the configuration file directory.
func ExpandEnv(m *model.Root, configDir string) {
	v := environmentExpansion{se: NewStringExpression("here", configDir)}
	model.Walk(v, m)
}
