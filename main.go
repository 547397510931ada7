package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviesheet/pkg/api"
	"moviesheet/pkg/config"
	"moviesheet/pkg/workbook"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configFile := flag.String("config", "moviesheet.toml", "Path to config file")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	cfg, err := config.NewDatastore(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Infof("Workbook file: %s", cfg.Settings.WorkbookPath)

	store := workbook.NewStore(cfg.Settings.WorkbookPath, !cfg.Settings.DisableBackups)
	router := api.GetRouter(store)
	if router != nil {
		go startServer(cfg.Settings.ListenAddress, router)
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}
}

func startServer(addr string, router http.Handler) {
	server := http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
