// Command geoflow evaluates a pipeline script over a generated group of
// cuboids and prints the realized items as JSON.
package main

import (
	"encoding/json"
	"os"

	"github.com/chazu/geoflow/internal/config"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	path := cfg.Script
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	source, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Fatalf("failed to read script %s", path)
	}

	log.WithFields(log.Fields{
		"script": path,
		"items":  cfg.Items,
	}).Info("evaluating pipeline")

	result := NewApp(cfg).Evaluate(string(source))
	for _, w := range result.Warnings {
		log.WithField("node", w.NodeID).Warn(w.Message)
	}
	for _, e := range result.Errors {
		log.WithFields(log.Fields{"line": e.Line, "node": e.NodeID}).Error(e.Message)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.WithError(err).Fatal("failed to write result")
	}

	log.WithFields(log.Fields{
		"items":  len(result.Items),
		"meshes": len(result.Meshes),
	}).Info("pipeline finished")
	if len(result.Errors) > 0 {
		os.Exit(1)
	}
}
