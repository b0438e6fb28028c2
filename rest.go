package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/beamtime/qserverd/devices"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithFields(log.Fields{log.ErrorKey: err}).Error("Failed to encode the response")
	}
}

// Restful exposes the configuration and the device registry to
// external integrations.
type Restful struct {
	router *mux.Router
	server *QServer
}

// DeviceListResponse is the reply of the device list endpoint.
type DeviceListResponse struct {
	Success          bool                           `json:"success"`
	Devices          map[string]*devices.Definition `json:"devices"`
	TotalCount       int                            `json:"total_count"`
	DeviceTypeFilter string                         `json:"device_type_filter,omitempty"`
}

// StatusResponse is the reply of the status endpoint.
type StatusResponse struct {
	Success     bool     `json:"success"`
	Service     string   `json:"service"`
	ConfigFile  string   `json:"config_file"`
	DeviceCount int      `json:"device_count"`
	DeviceTypes []string `json:"device_types"`
}

func NewRestful(server *QServer) *Restful {
	return &Restful{router: mux.NewRouter(), server: server}
}

// CreateHandler registers all routes of the REST API.
func (sr *Restful) CreateHandler() http.Handler {
	sr.router.HandleFunc("/devices", sr.ListDevices).Methods("GET")
	sr.router.HandleFunc("/devices/{name}", sr.GetDevice).Methods("GET")
	sr.router.HandleFunc("/config", sr.ShowConfig).Methods("GET")
	sr.router.HandleFunc("/config/devices", sr.DeviceExport).Methods("GET")
	sr.router.HandleFunc("/reload", sr.Reload).Methods("POST", "PUT")
	sr.router.HandleFunc("/status", sr.Status).Methods("GET")

	reg := prometheus.NewRegistry()
	reg.MustRegister(devices.NewRegistryCollector(sr.server.GetRegistry()))
	sr.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return sr.router
}

// ListDevices lists the registered devices, optionally filtered with
// the "type" query parameter.
func (sr *Restful) ListDevices(w http.ResponseWriter, req *http.Request) {
	deviceType := req.URL.Query().Get("type")

	var defs []*devices.Definition
	if deviceType != "" {
		defs = sr.server.GetRegistry().ByType(deviceType)
	} else {
		defs = sr.server.GetRegistry().All()
	}

	result := DeviceListResponse{
		Success:          true,
		Devices:          make(map[string]*devices.Definition, len(defs)),
		TotalCount:       len(defs),
		DeviceTypeFilter: deviceType,
	}
	for _, def := range defs {
		result.Devices[def.Name] = def
	}
	writeJSON(w, http.StatusOK, &result)
}

// GetDevice returns the definition of a single device.
func (sr *Restful) GetDevice(w http.ResponseWriter, req *http.Request) {
	params := mux.Vars(req)
	def := sr.server.GetRegistry().Get(params["name"])
	if def == nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "reason": "device not found"})
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// ShowConfig returns the effective configuration document.
func (sr *Restful) ShowConfig(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, sr.server.GetConfig().Root())
}

// DeviceExport returns the device export document for external
// integrations.
func (sr *Restful) DeviceExport(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, sr.server.GetRegistry().Export())
}

// Reload revalidates the configuration file and reloads the device
// registry.
func (sr *Restful) Reload(w http.ResponseWriter, req *http.Request) {
	defer req.Body.Close()

	if err := sr.server.Reload(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "reason": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"device_count": sr.server.GetRegistry().Count(),
	})
}

// Status reports the state of the service.
func (sr *Restful) Status(w http.ResponseWriter, req *http.Request) {
	registry := sr.server.GetRegistry()
	result := StatusResponse{
		Success:     true,
		Service:     "qserverd",
		ConfigFile:  sr.server.GetConfig().GetConfigFile(),
		DeviceCount: registry.Count(),
		DeviceTypes: registry.Types(),
	}
	writeJSON(w, http.StatusOK, &result)
}
