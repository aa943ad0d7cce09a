package main

import (
	"log"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/config"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/engine"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/handlers"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/storage"
)

func main() {
	cfg := config.Load()

	kv, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer kv.Close()

	eng := engine.New(kv, nil, cfg.SeedSamples)
	h := handlers.New(eng, kv)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// API - Metrics
	r.Get("/api/metrics", h.ListMetrics)
	r.Post("/api/metrics", h.CreateMetric)
	r.Delete("/api/metrics/{id}", h.DeleteMetric)

	// API - Dashboard
	r.Get("/api/dashboard/aggregate", h.DashboardAggregate)
	r.Get("/api/dashboard/statistics", h.DashboardStatistics)
	r.Get("/api/dashboard/compare", h.DashboardCompare)
	r.Get("/api/dashboard/summary", h.DashboardSummary)
	r.Get("/api/insights", h.ListInsights)

	// API - Widgets
	r.Get("/api/widgets", h.ListWidgets)
	r.Post("/api/widgets", h.CreateWidget)
	r.Delete("/api/widgets/{id}", h.DeleteWidget)

	// API - Settings & export
	r.Get("/api/settings/display-mode", h.GetDisplayMode)
	r.Put("/api/settings/display-mode", h.SetDisplayMode)
	r.Get("/api/report", h.GenerateReport)

	log.Printf("Server starting on http://localhost:%s", cfg.ServerPort)
	for _, ip := range lanIPs() {
		log.Printf("LAN access: http://%s:%s", ip, cfg.ServerPort)
	}
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func lanIPs() []string {
	var ips []string
	ifaces, err := net.Interfaces()
	if err != nil {
		return ips
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil {
				continue
			}
			ip = ip.To4()
			if ip == nil {
				continue
			}
			ips = append(ips, ip.String())
		}
	}
	return ips
}
