package main

import (
	"flag"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/logger"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", 0, "Workers per render (0 = one per CPU)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also write logs to this file")
	flag.Parse()

	log := logger.NewLogger(*logLevel)
	if *logFile != "" {
		fileLogger, err := logger.NewFileLogger(*logLevel, *logFile)
		if err != nil {
			log.Errorf("Error opening log file: %v", err)
			os.Exit(1)
		}
		log = fileLogger
	}
	defer log.Close()

	webServer := server.NewServer(*port, log)
	webServer.SetNumWorkers(*workers)

	log.Infof("Whitted Raytracer Web Server")
	log.Infof("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
