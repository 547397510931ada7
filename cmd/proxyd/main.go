package main

import (
	"flag"
	"net/http"
	"time"

	"moviesheet/pkg/config"
	"moviesheet/pkg/proxy"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "moviesheet.toml", "Path to config file")

	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.NewDatastore(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	handler := proxy.NewHandler(proxy.Config{
		AllowedHosts:    cfg.Settings.AllowedHosts,
		OpenMeteoAPIKey: cfg.Settings.OpenMeteoAPIKey,
		Timeout:         time.Duration(cfg.Settings.ProxyTimeoutSecs) * time.Second,
	})

	server := http.Server{
		Addr:              cfg.Settings.ProxyListenAddress,
		Handler:           handler,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("Proxy listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("ListenAndServeError: %v", err)
	}
}
