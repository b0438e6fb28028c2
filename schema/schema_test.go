package schema

import (
	"strings"
	"testing"
)

func doc(sections map[string]interface{}) map[string]interface{} {
	return sections
}

func startup(fields ...string) map[string]interface{} {
	m := make(map[string]interface{})
	for _, f := range fields {
		m[f] = "value"
	}
	return map[string]interface{}{"startup": m}
}

func TestEmptyDocumentIsValid(t *testing.T) {
	if err := Validate(map[string]interface{}{}); err != nil {
		t.Errorf("empty document should validate, got %v", err)
	}
}

func TestUnknownSection(t *testing.T) {
	err := Validate(doc(map[string]interface{}{"networking": map[string]interface{}{}}))
	if err == nil {
		t.Fatal("unknown top level key should be rejected")
	}
	vs := Violations(err)
	if len(vs) != 1 || vs[0].Path != "networking" {
		t.Errorf("unexpected violations: %v", err)
	}
}

func TestUnknownKeyInSection(t *testing.T) {
	err := Validate(doc(map[string]interface{}{
		"network": map[string]interface{}{"zmq_control_address": "tcp://*:60615"},
	}))
	if err == nil {
		t.Fatal("unknown section key should be rejected")
	}
	if vs := Violations(err); len(vs) != 1 || vs[0].Path != "network.zmq_control_address" {
		t.Errorf("unexpected violations: %v", err)
	}
}

func TestEmptySectionIsValid(t *testing.T) {
	if err := Validate(doc(map[string]interface{}{"network": nil})); err != nil {
		t.Errorf("empty section should validate, got %v", err)
	}
}

func TestFieldTypes(t *testing.T) {
	cases := []struct {
		name  string
		doc   map[string]interface{}
		valid bool
	}{
		{"bool ok", doc(map[string]interface{}{"network": map[string]interface{}{"zmq_publish_console": true}}), true},
		{"bool from string", doc(map[string]interface{}{"network": map[string]interface{}{"zmq_publish_console": "yes"}}), false},
		{"string ok", doc(map[string]interface{}{"network": map[string]interface{}{"redis_addr": "localhost:6379"}}), true},
		{"string from int", doc(map[string]interface{}{"network": map[string]interface{}{"redis_addr": 6379}}), false},
		{"int ok", doc(map[string]interface{}{"worker": map[string]interface{}{"ipython_shell_port": uint64(60000)}}), true},
		{"int from string", doc(map[string]interface{}{"worker": map[string]interface{}{"ipython_shell_port": "60000"}}), false},
	}
	for _, c := range cases {
		err := Validate(c.doc)
		if c.valid && err != nil {
			t.Errorf("%s: expected valid, got %v", c.name, err)
		}
		if !c.valid && err == nil {
			t.Errorf("%s: expected violation", c.name)
		}
	}
}

func TestConsoleLoggingLevelPattern(t *testing.T) {
	for _, level := range []string{"VERBOSE", "NORMAL", "QUIET", "SILENT"} {
		err := Validate(doc(map[string]interface{}{
			"operation": map[string]interface{}{"console_logging_level": level},
		}))
		if err != nil {
			t.Errorf("level %s should validate, got %v", level, err)
		}
	}

	err := Validate(doc(map[string]interface{}{
		"operation": map[string]interface{}{"console_logging_level": "LOUD"},
	}))
	if err == nil {
		t.Fatal("level LOUD should be rejected")
	}
	if vs := Violations(err); len(vs) != 1 || vs[0].Path != "operation.console_logging_level" {
		t.Errorf("unexpected violations: %v", err)
	}
}

func TestUserGroupPermissionsReloadPattern(t *testing.T) {
	err := Validate(doc(map[string]interface{}{
		"operation": map[string]interface{}{"user_group_permissions_reload": "ON_STARTUP"},
	}))
	if err != nil {
		t.Errorf("ON_STARTUP should validate, got %v", err)
	}

	err = Validate(doc(map[string]interface{}{
		"operation": map[string]interface{}{"user_group_permissions_reload": ""},
	}))
	if err == nil {
		t.Error("empty string should be rejected")
	}
}

func TestUpdateExistingPlansAndDevicesPattern(t *testing.T) {
	for _, v := range []string{"NEVER", "ENVIRONMENT_OPEN", "ALWAYS"} {
		err := Validate(doc(map[string]interface{}{
			"operation": map[string]interface{}{"update_existing_plans_and_devices": v},
		}))
		if err != nil {
			t.Errorf("value %s should validate, got %v", v, err)
		}
	}
	err := Validate(doc(map[string]interface{}{
		"operation": map[string]interface{}{"update_existing_plans_and_devices": "SOMETIMES"},
	}))
	if err == nil {
		t.Error("value SOMETIMES should be rejected")
	}
}

func TestStartupSingletonsAreLegal(t *testing.T) {
	for _, f := range []string{"startup_profile", "ipython_dir", "startup_dir", "startup_script", "startup_module"} {
		if err := Validate(startup(f)); err != nil {
			t.Errorf("singleton %s should validate, got %v", f, err)
		}
	}
}

func TestStartupLegalCombinations(t *testing.T) {
	for _, combination := range startupCombinations {
		if err := Validate(startup(combination...)); err != nil {
			t.Errorf("combination %v should validate, got %v", combination, err)
		}
	}
}

func TestStartupIllegalCombinations(t *testing.T) {
	illegal := [][]string{
		{"startup_script", "startup_module"},
		{"startup_dir", "startup_script"},
		{"startup_dir", "startup_module"},
		{"startup_dir", "startup_profile"},
		{"startup_dir", "startup_profile", "ipython_dir"},
		{"startup_profile", "ipython_dir", "startup_dir", "startup_script", "startup_module"},
	}
	for _, combination := range illegal {
		err := Validate(startup(combination...))
		if err == nil {
			t.Errorf("combination %v should be rejected", combination)
			continue
		}
		vs := Violations(err)
		if len(vs) != 1 || vs[0].Path != "startup" {
			t.Errorf("combination %v: unexpected violations: %v", combination, err)
		}
		if !strings.Contains(vs[0].Reason, "illegal combination") {
			t.Errorf("combination %v: unexpected reason: %s", combination, vs[0].Reason)
		}
	}
}

func TestStartupBaseFieldsDoNotConstrain(t *testing.T) {
	err := Validate(doc(map[string]interface{}{
		"startup": map[string]interface{}{
			"device_max_depth":                uint64(2),
			"existing_plans_and_devices_path": "plans.yaml",
			"user_group_permissions_path":     "perm.yaml",
			"startup_module":                  "beamline.startup",
			"startup_profile":                 "collection",
		},
	}))
	if err != nil {
		t.Errorf("base fields should combine freely, got %v", err)
	}
}

func TestSectionMustBeMapping(t *testing.T) {
	err := Validate(doc(map[string]interface{}{"network": []interface{}{"a"}}))
	if err == nil {
		t.Fatal("non-mapping section should be rejected")
	}
	if vs := Violations(err); len(vs) != 1 || vs[0].Path != "network" {
		t.Errorf("unexpected violations: %v", err)
	}
}

func TestAllViolationsAreCollected(t *testing.T) {
	err := Validate(doc(map[string]interface{}{
		"operation": map[string]interface{}{
			"console_logging_level": "LOUD",
			"print_console_output":  "yes",
			"unknown_flag":          true,
		},
		"extra": map[string]interface{}{},
	}))
	if len(Violations(err)) != 4 {
		t.Errorf("expected 4 violations, got %v", err)
	}
}

func TestFourteenLegalCombinations(t *testing.T) {
	if len(startupCombinations) != 14 {
		t.Errorf("expected 14 legal startup combinations, got %d", len(startupCombinations))
	}
}
