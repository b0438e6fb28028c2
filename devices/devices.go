// Package devices maintains the registry of devices discovered by the
// queue server. Definitions are read from the existing plans and
// devices file named by the startup section and served to external
// integrations in a normalized form.
package devices

import (
	"fmt"
	"io/ioutil"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-memdb"
	"github.com/r3labs/diff"
	log "github.com/sirupsen/logrus"

	"github.com/beamtime/qserverd/config"
	"github.com/beamtime/qserverd/util"
)

// Definition is the normalized description of a single device.
type Definition struct {
	Name         string          `json:"name"`
	DeviceClass  string          `json:"device_class"`
	DeviceType   string          `json:"device_type"`
	Module       string          `json:"module"`
	Capabilities map[string]bool `json:"capabilities"`
}

// deviceInfo is the on-disk shape of one device in the existing plans
// and devices file.
type deviceInfo struct {
	Classname  string `yaml:"classname"`
	Module     string `yaml:"module"`
	IsReadable bool   `yaml:"is_readable"`
	IsMovable  bool   `yaml:"is_movable"`
	IsFlyable  bool   `yaml:"is_flyable"`
}

type plansAndDevices struct {
	ExistingDevices map[string]deviceInfo  `yaml:"existing_devices"`
	ExistingPlans   map[string]interface{} `yaml:"existing_plans"`
}

var registrySchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		"device": {
			Name: "device",
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Name"},
				},
				"type": {
					Name:    "type",
					Indexer: &memdb.StringFieldIndex{Field: "DeviceType"},
				},
			},
		},
	},
}

// Registry holds the device definitions currently known to the
// service. Safe for concurrent use.
type Registry struct {
	db *memdb.MemDB

	mu       sync.Mutex
	loadedAt time.Time
	source   string
}

// NewRegistry creates an empty registry.
func NewRegistry() (*Registry, error) {
	db, err := memdb.NewMemDB(registrySchema)
	if err != nil {
		return nil, err
	}
	return &Registry{db: db}, nil
}

// LoadFile reads the existing plans and devices file and replaces the
// registry content with the definitions found there. Unchanged
// definitions keep their rows. Returns the number of definitions now
// in the registry.
func (r *Registry) LoadFile(path string) (int, error) {
	log.WithFields(log.Fields{"file": path}).Info("load devices from existing plans and devices file")

	d, err := ioutil.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var pd plansAndDevices
	if err := yaml.Unmarshal(d, &pd); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	defs := make(map[string]*Definition, len(pd.ExistingDevices))
	for name, info := range pd.ExistingDevices {
		def := newDefinition(name, info)
		if def == nil {
			log.WithFields(log.Fields{"device": name}).Warn("skip device without class name")
			continue
		}
		defs[name] = def
	}

	if err := r.apply(defs); err != nil {
		return 0, err
	}

	r.mu.Lock()
	r.loadedAt = time.Now()
	r.source = path
	r.mu.Unlock()

	log.WithFields(log.Fields{"devices": len(defs), "file": path}).Info("device registry loaded")
	return len(defs), nil
}

func newDefinition(name string, info deviceInfo) *Definition {
	if info.Classname == "" {
		return nil
	}

	deviceClass := info.Classname
	if info.Module != "" {
		deviceClass = info.Module + "." + info.Classname
	}

	return &Definition{
		Name:        name,
		DeviceClass: deviceClass,
		DeviceType:  classifyType(info.Classname),
		Module:      info.Module,
		Capabilities: map[string]bool{
			"readable": info.IsReadable,
			"movable":  info.IsMovable,
			"flyable":  info.IsFlyable,
		},
	}
}

// classifyType derives the coarse device type from the class name.
func classifyType(classname string) string {
	c := strings.ToLower(classname)
	switch {
	case strings.Contains(c, "motor"):
		return "motor"
	case strings.Contains(c, "detector"), strings.Contains(c, "camera"):
		return "detector"
	case strings.Contains(c, "signal"):
		return "signal"
	case strings.Contains(c, "flyer"):
		return "flyer"
	default:
		return "device"
	}
}

// apply reconciles the registry with defs inside a single write
// transaction: unchanged rows are left alone, changed ones are
// reinserted and rows absent from defs are deleted.
func (r *Registry) apply(defs map[string]*Definition) error {
	txn := r.db.Txn(true)
	defer txn.Abort()

	var errs config.ErrList
	for name, def := range defs {
		raw, _ := txn.First("device", "id", name)
		if orig, ok := raw.(*Definition); ok && !diff.Changed(orig, def) {
			continue
		}
		errs.Add(txn.Insert("device", def))
	}

	removed := util.Sub(namesOf(txn), keysOf(defs))
	for _, name := range removed {
		errs.Add(txn.Delete("device", &Definition{Name: name}))
	}

	if err := errs.Err(); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func namesOf(txn *memdb.Txn) []string {
	result := make([]string, 0)
	it, err := txn.Get("device", "id")
	if err != nil {
		return result
	}
	for obj := it.Next(); obj != nil; obj = it.Next() {
		result = append(result, obj.(*Definition).Name)
	}
	return result
}

func keysOf(defs map[string]*Definition) []string {
	result := make([]string, 0, len(defs))
	for name := range defs {
		result = append(result, name)
	}
	return result
}

// Get returns the definition of a single device or nil.
func (r *Registry) Get(name string) *Definition {
	txn := r.db.Txn(false)
	defer txn.Abort()

	raw, _ := txn.First("device", "id", name)
	if def, ok := raw.(*Definition); ok {
		return def
	}
	return nil
}

// All returns every definition in the registry.
func (r *Registry) All() []*Definition {
	return r.list("id", "")
}

// ByType returns the definitions with the given device type.
func (r *Registry) ByType(deviceType string) []*Definition {
	return r.list("type", deviceType)
}

func (r *Registry) list(index string, arg string) []*Definition {
	txn := r.db.Txn(false)
	defer txn.Abort()

	var it memdb.ResultIterator
	var err error
	if arg == "" {
		it, err = txn.Get("device", index)
	} else {
		it, err = txn.Get("device", index, arg)
	}
	if err != nil {
		return nil
	}

	result := make([]*Definition, 0)
	for obj := it.Next(); obj != nil; obj = it.Next() {
		result = append(result, obj.(*Definition))
	}
	return result
}

// Names returns the names of all registered devices.
func (r *Registry) Names() []string {
	defs := r.All()
	result := make([]string, 0, len(defs))
	for _, def := range defs {
		result = append(result, def.Name)
	}
	return result
}

// Count returns the number of registered devices.
func (r *Registry) Count() int {
	return len(r.All())
}

// Types returns the distinct device types present in the registry.
func (r *Registry) Types() []string {
	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, def := range r.All() {
		if !seen[def.DeviceType] {
			seen[def.DeviceType] = true
			result = append(result, def.DeviceType)
		}
	}
	return result
}

// LoadedAt returns the time of the last successful load, zero when the
// registry was never loaded.
func (r *Registry) LoadedAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadedAt
}

// Source returns the path the registry was last loaded from.
func (r *Registry) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}
