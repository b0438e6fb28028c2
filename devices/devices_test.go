package devices

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

const plansAndDevicesFile = `
existing_devices:
  motor1:
    classname: EpicsMotor
    module: ophyd
    is_readable: true
    is_movable: true
    is_flyable: false
  det1:
    classname: AreaDetector
    module: ophyd.areadetector
    is_readable: true
    is_movable: false
    is_flyable: false
  temp:
    classname: EpicsSignalRO
    module: ophyd.signal
    is_readable: true
    is_movable: false
    is_flyable: false
  fly1:
    classname: SimFlyer
    module: sim
    is_readable: false
    is_movable: false
    is_flyable: true
existing_plans:
  count: {}
  scan: {}
`

func writeTmp(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "devices")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "plans_and_devices.yaml")
	if err := ioutil.WriteFile(path, []byte(content), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	return path
}

func loadRegistry(t *testing.T, content string) *Registry {
	t.Helper()
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadFile(writeTmp(t, content)); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLoadFile(t *testing.T) {
	r := loadRegistry(t, plansAndDevicesFile)

	if r.Count() != 4 {
		t.Errorf("expected 4 devices, got %d", r.Count())
	}

	motor := r.Get("motor1")
	if motor == nil {
		t.Fatal("motor1 not found")
	}
	if motor.DeviceType != "motor" {
		t.Errorf("unexpected device type %q", motor.DeviceType)
	}
	if motor.DeviceClass != "ophyd.EpicsMotor" {
		t.Errorf("unexpected device class %q", motor.DeviceClass)
	}
	if !motor.Capabilities["movable"] || motor.Capabilities["flyable"] {
		t.Errorf("unexpected capabilities %v", motor.Capabilities)
	}

	if r.Get("absent") != nil {
		t.Error("absent device should return nil")
	}
}

func TestClassifyType(t *testing.T) {
	cases := map[string]string{
		"EpicsMotor":    "motor",
		"AreaDetector":  "detector",
		"SimCamera":     "detector",
		"EpicsSignalRO": "signal",
		"SimFlyer":      "flyer",
		"Widget":        "device",
	}
	for classname, expected := range cases {
		if got := classifyType(classname); got != expected {
			t.Errorf("%s: expected %s, got %s", classname, expected, got)
		}
	}
}

func TestByType(t *testing.T) {
	r := loadRegistry(t, plansAndDevicesFile)

	detectors := r.ByType("detector")
	if len(detectors) != 1 || detectors[0].Name != "det1" {
		t.Errorf("unexpected detectors %v", detectors)
	}
	if len(r.ByType("nonexistent")) != 0 {
		t.Error("unknown type should return no devices")
	}
}

func TestTypes(t *testing.T) {
	r := loadRegistry(t, plansAndDevicesFile)
	types := r.Types()
	if len(types) != 4 {
		t.Errorf("expected 4 distinct types, got %v", types)
	}
}

func TestSkipsDeviceWithoutClassname(t *testing.T) {
	r := loadRegistry(t, `
existing_devices:
  good:
    classname: EpicsMotor
    module: ophyd
  bad:
    module: ophyd
`)
	if r.Count() != 1 {
		t.Errorf("expected 1 device, got %d", r.Count())
	}
	if r.Get("bad") != nil {
		t.Error("device without classname should be skipped")
	}
}

func TestReloadRemovesAndUpdates(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}

	path := writeTmp(t, plansAndDevicesFile)
	if _, err := r.LoadFile(path); err != nil {
		t.Fatal(err)
	}

	if err := ioutil.WriteFile(path, []byte(`
existing_devices:
  motor1:
    classname: EpicsMotor
    module: ophyd.sim
    is_readable: true
    is_movable: true
`), os.ModePerm); err != nil {
		t.Fatal(err)
	}
	n, err := r.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if n != 1 || r.Count() != 1 {
		t.Errorf("expected 1 device after reload, got %d", r.Count())
	}
	if r.Get("det1") != nil {
		t.Error("removed device should be gone")
	}
	if motor := r.Get("motor1"); motor == nil || motor.Module != "ophyd.sim" {
		t.Error("changed device should be updated")
	}
}

func TestLoadFileMissing(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.LoadFile("/does/not/exist.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}

func TestLoadedAt(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if !r.LoadedAt().IsZero() {
		t.Error("fresh registry should report zero load time")
	}

	if _, err := r.LoadFile(writeTmp(t, plansAndDevicesFile)); err != nil {
		t.Fatal(err)
	}
	if r.LoadedAt().IsZero() {
		t.Error("load time should be set after a load")
	}
}
