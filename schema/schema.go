// Package schema describes the accepted shape of the qserverd
// configuration document and validates generically decoded documents
// against it.
//
// The schema is declarative data: five named sections, each with a
// fixed field set. A document may omit any section and any field, but
// may not carry keys outside the enumerated sets. Three operation
// fields are restricted to literal value enumerations and the startup
// section only accepts an enumerated list of field combinations.
package schema

import "regexp"

// Kind is the expected YAML scalar kind of a field value.
type Kind int

const (
	String Kind = iota
	Bool
	Int
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	default:
		return "string"
	}
}

// Field describes a single configuration key within a section.
type Field struct {
	Name    string
	Kind    Kind
	Pattern *regexp.Regexp
}

// Section describes one of the five top-level configuration groups.
type Section struct {
	Name   string
	Fields []Field

	// Constrained lists the fields participating in the combination
	// constraint. Combinations enumerates the legal subsets of those
	// fields; any other combination is invalid even though every field
	// is individually optional.
	Constrained  []string
	Combinations [][]string
}

// Lookup returns the field definition with the given name.
func (s *Section) Lookup(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

var (
	consoleLoggingLevelPattern           = regexp.MustCompile(`^(VERBOSE|NORMAL|QUIET|SILENT)$`)
	updateExistingPlansAndDevicesPattern = regexp.MustCompile(`^(NEVER|ENVIRONMENT_OPEN|ALWAYS)$`)
	userGroupPermissionsReloadPattern    = regexp.MustCompile(`^(NEVER|ON_REQUEST|ON_STARTUP)$`)
)

// startupCombinations enumerates the legal subsets of the five
// combination-constrained startup fields. startup_script and
// startup_module are mutually exclusive and combine freely with
// startup_profile and ipython_dir; startup_dir excludes everything
// except ipython_dir.
var startupCombinations = [][]string{
	{},
	{"startup_profile"},
	{"ipython_dir"},
	{"startup_profile", "ipython_dir"},
	{"startup_script"},
	{"startup_script", "startup_profile"},
	{"startup_script", "ipython_dir"},
	{"startup_script", "startup_profile", "ipython_dir"},
	{"startup_module"},
	{"startup_module", "startup_profile"},
	{"startup_module", "ipython_dir"},
	{"startup_module", "startup_profile", "ipython_dir"},
	{"startup_dir"},
	{"startup_dir", "ipython_dir"},
}

var sections = []Section{
	{
		Name: "network",
		Fields: []Field{
			{Name: "zmq_control_addr", Kind: String},
			{Name: "zmq_private_key_env", Kind: String},
			{Name: "zmq_info_addr", Kind: String},
			{Name: "zmq_publish_console", Kind: Bool},
			{Name: "redis_addr", Kind: String},
			{Name: "redis_name_prefix", Kind: String},
		},
	},
	{
		Name: "worker",
		Fields: []Field{
			{Name: "use_ipython_kernel", Kind: Bool},
			{Name: "ipython_kernel_ip", Kind: String},
			{Name: "ipython_matplotlib", Kind: String},
			{Name: "ipython_connection_file", Kind: String},
			{Name: "ipython_connection_dir", Kind: String},
			{Name: "ipython_shell_port", Kind: Int},
			{Name: "ipython_iopub_port", Kind: Int},
			{Name: "ipython_stdin_port", Kind: Int},
			{Name: "ipython_hb_port", Kind: Int},
			{Name: "ipython_control_port", Kind: Int},
		},
	},
	{
		Name: "startup",
		Fields: []Field{
			{Name: "device_max_depth", Kind: Int},
			{Name: "existing_plans_and_devices_path", Kind: String},
			{Name: "user_group_permissions_path", Kind: String},
			{Name: "startup_profile", Kind: String},
			{Name: "ipython_dir", Kind: String},
			{Name: "startup_dir", Kind: String},
			{Name: "startup_script", Kind: String},
			{Name: "startup_module", Kind: String},
		},
		Constrained: []string{
			"startup_profile", "ipython_dir", "startup_dir", "startup_script", "startup_module",
		},
		Combinations: startupCombinations,
	},
	{
		Name: "operation",
		Fields: []Field{
			{Name: "print_console_output", Kind: Bool},
			{Name: "console_logging_level", Kind: String, Pattern: consoleLoggingLevelPattern},
			{Name: "update_existing_plans_and_devices", Kind: String, Pattern: updateExistingPlansAndDevicesPattern},
			{Name: "user_group_permissions_reload", Kind: String, Pattern: userGroupPermissionsReloadPattern},
			{Name: "emergency_lock_key", Kind: String},
		},
	},
	{
		Name: "run_engine",
		Fields: []Field{
			{Name: "use_persistent_metadata", Kind: Bool},
			{Name: "kafka_server", Kind: String},
			{Name: "kafka_topic", Kind: String},
			{Name: "zmq_data_proxy_addr", Kind: String},
			{Name: "databroker_config", Kind: String},
		},
	},
}

// Sections returns the schema of the configuration document.
func Sections() []Section {
	return sections
}

// LookupSection returns the section definition with the given name.
func LookupSection(name string) (*Section, bool) {
	for i := range sections {
		if sections[i].Name == name {
			return &sections[i], true
		}
	}
	return nil, false
}
