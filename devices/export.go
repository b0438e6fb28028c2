package devices

import (
	"encoding/json"
	"io/ioutil"
	"os"
)

// RegistryInfo identifies the producer of an export document.
type RegistryInfo struct {
	Version string `json:"version"`
	Source  string `json:"source"`
}

// ExportDocument is the JSON document served to external integrations.
type ExportDocument struct {
	Devices        map[string]*Definition `json:"devices"`
	DeviceRegistry RegistryInfo           `json:"device_registry"`
}

// Export builds the export document from the current registry content.
func (r *Registry) Export() *ExportDocument {
	doc := &ExportDocument{
		Devices: make(map[string]*Definition),
		DeviceRegistry: RegistryInfo{
			Version: "1.0",
			Source:  "qserverd",
		},
	}
	for _, def := range r.All() {
		doc.Devices[def.Name] = def
	}
	return doc
}

// WriteExport writes the export document to path as indented JSON.
func (r *Registry) WriteExport(path string) error {
	d, err := json.MarshalIndent(r.Export(), "", "  ")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, d, os.FileMode(0644))
}
