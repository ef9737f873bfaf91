package monitoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Server is the ops dashboard backend. It runs on its own port,
// separate from the API.
type Server struct {
	db         *pgxpool.Pool
	port       int
	alerts     []Alert
	alertsMux  sync.RWMutex
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Alert
}

type Alert struct {
	ID        int       `json:"id"`
	Severity  string    `json:"severity"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Resolved  bool      `json:"resolved"`
}

type Stats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	ActiveAlerts      int     `json:"active_alerts"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	DiskPercent       float64 `json:"disk_percent"`
	DBSize            string  `json:"db_size"`
	Uptime            string  `json:"uptime"`
	Pharmacies        int     `json:"pharmacies"`
	PendingDemandes   int     `json:"pending_demandes"`
	PendingNotifs     int     `json:"pending_notifications"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewServer(db *pgxpool.Pool, port int) *Server {
	return &Server{
		db:        db,
		port:      port,
		alerts:    make([]Alert, 0),
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Alert),
	}
}

func (s *Server) Start() {
	r := mux.NewRouter()

	r.HandleFunc("/api/stats", s.getStats).Methods("GET")
	r.HandleFunc("/api/alerts", s.getAlerts).Methods("GET")
	r.HandleFunc("/ws", s.handleWebSocket)

	go s.handleBroadcast()
	go s.monitorHealth()

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("[Monitoring] Dashboard running on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	stats := s.collectStats()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) collectStats() Stats {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := s.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	var activeConns int
	s.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	var dbSizeBytes int64
	s.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	var uptimeSec int
	s.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	// Domain counters for the dashboard header
	var pharmacies, pendingDemandes, pendingNotifs int
	s.db.QueryRow(ctx, "SELECT count(*) FROM pharmacies WHERE is_active").Scan(&pharmacies)
	s.db.QueryRow(ctx, "SELECT count(*) FROM demandes WHERE status = 'pending'").Scan(&pendingDemandes)
	s.db.QueryRow(ctx, "SELECT count(*) FROM notifications WHERE status = 'pending'").Scan(&pendingNotifs)

	cpuPercents, _ := cpu.Percent(time.Second, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	s.alertsMux.RLock()
	activeAlertCount := 0
	for _, alert := range s.alerts {
		if !alert.Resolved {
			activeAlertCount++
		}
	}
	s.alertsMux.RUnlock()

	return Stats{
		DatabaseStatus:    dbStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		ActiveAlerts:      activeAlertCount,
		CPUPercent:        cpuPercent,
		MemoryPercent:     memStats.UsedPercent,
		DiskPercent:       diskStats.UsedPercent,
		DBSize:            formatBytes(uint64(dbSizeBytes)),
		Uptime:            formatUptime(uptimeSec),
		Pharmacies:        pharmacies,
		PendingDemandes:   pendingDemandes,
		PendingNotifs:     pendingNotifs,
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s *Server) getAlerts(w http.ResponseWriter, r *http.Request) {
	s.alertsMux.RLock()
	defer s.alertsMux.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.alerts)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("[Monitoring] WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	s.clientsMux.Lock()
	s.clients[conn] = true
	s.clientsMux.Unlock()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			s.clientsMux.Lock()
			delete(s.clients, conn)
			s.clientsMux.Unlock()
			break
		}
	}
}

func (s *Server) handleBroadcast() {
	for alert := range s.broadcast {
		s.clientsMux.Lock()
		for client := range s.clients {
			if err := client.WriteJSON(alert); err != nil {
				client.Close()
				delete(s.clients, client)
			}
		}
		s.clientsMux.Unlock()
	}
}

func (s *Server) raise(alert Alert) {
	s.alertsMux.Lock()
	alert.ID = len(s.alerts) + 1
	alert.Timestamp = time.Now()
	s.alerts = append(s.alerts, alert)
	s.alertsMux.Unlock()

	s.broadcast <- alert
}

func (s *Server) monitorHealth() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := s.collectStats()

		if stats.DatabaseStatus == "unhealthy" {
			s.raise(Alert{
				Severity: "critical",
				Type:     "database_down",
				Message:  "Database is unreachable",
			})
		}

		if stats.ResponseTime > 1000 {
			s.raise(Alert{
				Severity: "warning",
				Type:     "high_latency",
				Message:  fmt.Sprintf("Database response time: %dms", stats.ResponseTime),
			})
		}
	}
}
