package model

// Root is the typed in-memory representation of a qserverd
// configuration document. Every section is optional; a nil section
// means the document did not mention it.
type Root struct {
	Network   *Network   `yaml:"network" json:"network,omitempty"`
	Worker    *Worker    `yaml:"worker" json:"worker,omitempty"`
	Startup   *Startup   `yaml:"startup" json:"startup,omitempty"`
	Operation *Operation `yaml:"operation" json:"operation,omitempty"`
	RunEngine *RunEngine `yaml:"run_engine" json:"run_engine,omitempty"`
}

// Network holds transport addressing for the control and information
// channels. The addresses are never dialed by qserverd itself, they
// are validated and served to clients.
type Network struct {
	ZmqControlAddr    string `yaml:"zmq_control_addr" json:"zmq_control_addr" default:"tcp://*:60615"`
	ZmqPrivateKeyEnv  string `yaml:"zmq_private_key_env" json:"zmq_private_key_env,omitempty"`
	ZmqInfoAddr       string `yaml:"zmq_info_addr" json:"zmq_info_addr" default:"tcp://*:60625"`
	ZmqPublishConsole bool   `yaml:"zmq_publish_console" json:"zmq_publish_console"`
	RedisAddr         string `yaml:"redis_addr" json:"redis_addr" default:"localhost:6379"`
	RedisNamePrefix   string `yaml:"redis_name_prefix" json:"redis_name_prefix" default:"qs_default"`
}

// Worker holds execution-kernel settings.
type Worker struct {
	UseIpythonKernel      bool   `yaml:"use_ipython_kernel" json:"use_ipython_kernel"`
	IpythonKernelIP       string `yaml:"ipython_kernel_ip" json:"ipython_kernel_ip" default:"localhost"`
	IpythonMatplotlib     string `yaml:"ipython_matplotlib" json:"ipython_matplotlib,omitempty"`
	IpythonConnectionFile string `yaml:"ipython_connection_file" json:"ipython_connection_file,omitempty"`
	IpythonConnectionDir  string `yaml:"ipython_connection_dir" json:"ipython_connection_dir,omitempty"`
	IpythonShellPort      int    `yaml:"ipython_shell_port" json:"ipython_shell_port,omitempty"`
	IpythonIopubPort      int    `yaml:"ipython_iopub_port" json:"ipython_iopub_port,omitempty"`
	IpythonStdinPort      int    `yaml:"ipython_stdin_port" json:"ipython_stdin_port,omitempty"`
	IpythonHbPort         int    `yaml:"ipython_hb_port" json:"ipython_hb_port,omitempty"`
	IpythonControlPort    int    `yaml:"ipython_control_port" json:"ipython_control_port,omitempty"`
}

// Startup holds code-loading options. The five location fields
// (profile, ipython dir, dir, script, module) are combination
// constrained, see the schema package.
type Startup struct {
	DeviceMaxDepth              int    `yaml:"device_max_depth" json:"device_max_depth"`
	ExistingPlansAndDevicesPath string `yaml:"existing_plans_and_devices_path" json:"existing_plans_and_devices_path,omitempty"`
	UserGroupPermissionsPath    string `yaml:"user_group_permissions_path" json:"user_group_permissions_path,omitempty"`
	StartupProfile              string `yaml:"startup_profile" json:"startup_profile,omitempty"`
	IpythonDir                  string `yaml:"ipython_dir" json:"ipython_dir,omitempty"`
	StartupDir                  string `yaml:"startup_dir" json:"startup_dir,omitempty"`
	StartupScript               string `yaml:"startup_script" json:"startup_script,omitempty"`
	StartupModule               string `yaml:"startup_module" json:"startup_module,omitempty"`
}

// Operation holds runtime behavior flags.
type Operation struct {
	PrintConsoleOutput            bool   `yaml:"print_console_output" json:"print_console_output" default:"true"`
	ConsoleLoggingLevel           string `yaml:"console_logging_level" json:"console_logging_level" default:"NORMAL"`
	UpdateExistingPlansAndDevices string `yaml:"update_existing_plans_and_devices" json:"update_existing_plans_and_devices" default:"ENVIRONMENT_OPEN"`
	UserGroupPermissionsReload    string `yaml:"user_group_permissions_reload" json:"user_group_permissions_reload" default:"ON_STARTUP"`
	EmergencyLockKey              string `yaml:"emergency_lock_key" json:"emergency_lock_key,omitempty"`
}

// RunEngine holds data-recording settings.
type RunEngine struct {
	UsePersistentMetadata bool   `yaml:"use_persistent_metadata" json:"use_persistent_metadata"`
	KafkaServer           string `yaml:"kafka_server" json:"kafka_server,omitempty"`
	KafkaTopic            string `yaml:"kafka_topic" json:"kafka_topic,omitempty"`
	ZmqDataProxyAddr      string `yaml:"zmq_data_proxy_addr" json:"zmq_data_proxy_addr,omitempty"`
	DatabrokerConfig      string `yaml:"databroker_config" json:"databroker_config,omitempty"`
}
