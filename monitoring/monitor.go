// Package monitoring serves completed simulation results over HTTP so they
// can be inspected from a browser or scraped by other tools.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/tracelab/cachemodel/analysis"
	"github.com/tracelab/cachemodel/cache"
)

// RunSummary is the aggregate view of one completed replay.
type RunSummary struct {
	Name          string  `json:"name"`
	NumSets       int     `json:"num_sets"`
	Associativity int     `json:"associativity"`
	BlockSize     int     `json:"block_size"`
	Accesses      uint64  `json:"accesses"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Evictions     uint64  `json:"evictions"`
	HitRate       float64 `json:"hit_rate"`
}

// A Result bundles everything the server exposes about one run.
type Result struct {
	Summary    RunSummary
	Curve      []analysis.SizeMissRate
	WorkingSet []int
}

// Monitor serves a completed run. The result is set once before StartServer
// and never mutated afterwards, so the handlers need no locking.
type Monitor struct {
	sim        *cache.Simulator
	result     Result
	portNumber int
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulator registers the simulator whose internal state is exposed
// at /api/state.
func (m *Monitor) RegisterSimulator(sim *cache.Simulator) {
	m.sim = sim
}

// RegisterResult sets the completed result to serve.
func (m *Monitor) RegisterResult(result Result) {
	m.result = result
}

// StartServer starts the monitor as a web server with a custom port if
// wanted. It returns the URL the server listens on.
func (m *Monitor) StartServer() string {
	r := mux.NewRouter()

	r.HandleFunc("/api/summary", m.summary)
	r.HandleFunc("/api/curve", m.curve)
	r.HandleFunc("/api/workingset", m.workingSet)
	r.HandleFunc("/api/state", m.state)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Serving simulation results with %s\n", url)

	go func() {
		err = http.Serve(listener, r)
		dieOnErr(err)
	}()

	return url
}

func (m *Monitor) summary(w http.ResponseWriter, _ *http.Request) {
	m.writeJSON(w, m.result.Summary)
}

func (m *Monitor) curve(w http.ResponseWriter, _ *http.Request) {
	points := m.result.Curve
	if points == nil {
		points = []analysis.SizeMissRate{}
	}

	m.writeJSON(w, points)
}

func (m *Monitor) workingSet(w http.ResponseWriter, _ *http.Request) {
	sizes := m.result.WorkingSet
	if sizes == nil {
		sizes = []int{}
	}

	m.writeJSON(w, sizes)
}

func (m *Monitor) state(w http.ResponseWriter, _ *http.Request) {
	if m.sim == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("No simulator registered"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(m.sim)
	serializer.SetMaxDepth(2)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	proc, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := proc.CPUPercent()
	dieOnErr(err)

	memoryInfo, err := proc.MemoryInfo()
	dieOnErr(err)

	m.writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	m.writeJSON(w, prof)
}

func (m *Monitor) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	bytes, err := json.Marshal(v)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
