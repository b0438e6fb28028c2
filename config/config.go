// Package config loads and validates the qserverd configuration file.
//
// Loading is a fixed pipeline: read the file, validate the raw
// document shape against the schema, decode into the typed model,
// expand environment references in path fields, then apply the
// semantic checks. Any violation aborts the load, a Config never
// exposes a partially valid document.
package config

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/beamtime/qserverd/model"
	"github.com/beamtime/qserverd/schema"
)

// Config is the in-memory representation of a qserverd configuration
// file. Load may run concurrently with the accessors, the effective
// document is guarded by a lock.
type Config struct {
	configFile string

	mu   sync.RWMutex
	root *model.Root
}

// NewConfig creates a Config for the given file. Nothing is read until
// Load is called.
func NewConfig(configFile string) *Config {
	return &Config{configFile: configFile, root: model.Defaults()}
}

// Load reads and validates the configuration file. On failure the
// previously loaded document stays in effect.
func (c *Config) Load() error {
	log.WithFields(log.Fields{"file": c.configFile}).Info("load configuration from file")

	d, err := ioutil.ReadFile(c.configFile)
	if err != nil {
		return err
	}
	root, err := c.parse(d)
	if err != nil {
		return err
	}
	c.setRoot(root)
	return nil
}

// LoadBuffer validates an in-memory configuration document.
func (c *Config) LoadBuffer(d []byte) error {
	root, err := c.parse(d)
	if err != nil {
		return err
	}
	c.setRoot(root)
	return nil
}

func (c *Config) setRoot(root *model.Root) {
	c.mu.Lock()
	c.root = root
	c.mu.Unlock()
}

func (c *Config) parse(d []byte) (*model.Root, error) {
	doc, err := model.LoadDocument(d)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	var reader model.Reader
	root, err := reader.LoadReader(bytes.NewReader(d))
	if err != nil {
		return nil, err
	}
	fillDefaults(root)
	ExpandEnv(root, c.GetConfigFileDir())
	if err := model.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

// Validate runs the load pipeline without retaining the result. It
// returns every violation found in the document.
func Validate(d []byte) error {
	doc, err := model.LoadDocument(d)
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return err
	}
	var reader model.Reader
	root, err := reader.LoadReader(bytes.NewReader(d))
	if err != nil {
		return err
	}
	fillDefaults(root)
	return model.Validate(root)
}

// ValidateFile validates a configuration file on disk.
func ValidateFile(path string) error {
	d, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return Validate(d)
}

// Violations unpacks the individual errors carried by an error
// returned from Load or Validate.
func Violations(err error) []error {
	return multierr.Errors(err)
}

// fillDefaults replaces absent sections with default-populated ones so
// accessors observe effective values.
func fillDefaults(root *model.Root) {
	def := model.Defaults()
	if root.Network == nil {
		root.Network = def.Network
	}
	if root.Worker == nil {
		root.Worker = def.Worker
	}
	if root.Startup == nil {
		root.Startup = def.Startup
	}
	if root.Operation == nil {
		root.Operation = def.Operation
	}
	if root.RunEngine == nil {
		root.RunEngine = def.RunEngine
	}
}

// Root returns the effective configuration document.
func (c *Config) Root() *model.Root {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root
}

// GetConfigFileDir returns directory of the qserverd configuration file
func (c *Config) GetConfigFileDir() string {
	return filepath.Dir(c.configFile)
}

// GetConfigFile returns the configuration file path.
func (c *Config) GetConfigFile() string {
	return c.configFile
}

// GetControlAddr returns the ZMQ control channel address.
func (c *Config) GetControlAddr() string {
	return c.Root().Network.ZmqControlAddr
}

// GetInfoAddr returns the ZMQ information channel address.
func (c *Config) GetInfoAddr() string {
	return c.Root().Network.ZmqInfoAddr
}

// GetRedisAddr returns the redis address.
func (c *Config) GetRedisAddr() string {
	return c.Root().Network.RedisAddr
}

// GetConsoleLoggingLevel returns one of VERBOSE, NORMAL, QUIET, SILENT.
func (c *Config) GetConsoleLoggingLevel() string {
	return c.Root().Operation.ConsoleLoggingLevel
}

// GetLogLevel maps the configured console logging level onto a logrus
// level.
func (c *Config) GetLogLevel() log.Level {
	switch c.GetConsoleLoggingLevel() {
	case "VERBOSE":
		return log.DebugLevel
	case "QUIET":
		return log.WarnLevel
	case "SILENT":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// GetExistingPlansAndDevicesPath returns the path of the existing
// plans and devices file, resolved against the configuration file
// directory when relative. Empty when not configured.
func (c *Config) GetExistingPlansAndDevicesPath() string {
	return c.resolvePath(c.Root().Startup.ExistingPlansAndDevicesPath)
}

// GetUserGroupPermissionsPath returns the path of the user group
// permissions file. Empty when not configured.
func (c *Config) GetUserGroupPermissionsPath() string {
	return c.resolvePath(c.Root().Startup.UserGroupPermissionsPath)
}

func (c *Config) resolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.GetConfigFileDir(), p)
}

// GetDeviceMaxDepth returns the configured device discovery depth.
func (c *Config) GetDeviceMaxDepth() int {
	return c.Root().Startup.DeviceMaxDepth
}
