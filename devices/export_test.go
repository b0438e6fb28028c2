package devices

import (
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"
)

func TestExport(t *testing.T) {
	r := loadRegistry(t, plansAndDevicesFile)

	doc := r.Export()
	if doc.DeviceRegistry.Version != "1.0" || doc.DeviceRegistry.Source != "qserverd" {
		t.Errorf("unexpected registry info %+v", doc.DeviceRegistry)
	}
	if len(doc.Devices) != 4 {
		t.Errorf("expected 4 devices in the export, got %d", len(doc.Devices))
	}
	if doc.Devices["motor1"].DeviceType != "motor" {
		t.Error("export should carry the normalized definitions")
	}
}

func TestWriteExport(t *testing.T) {
	r := loadRegistry(t, plansAndDevicesFile)

	path := filepath.Join(t.TempDir(), "devices.json")
	if err := r.WriteExport(path); err != nil {
		t.Fatal(err)
	}

	d, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc ExportDocument
	if err := json.Unmarshal(d, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Devices) != 4 {
		t.Errorf("expected 4 devices in the written export, got %d", len(doc.Devices))
	}
}
