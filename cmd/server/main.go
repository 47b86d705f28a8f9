package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/HadleysDad/loot-api/internal/config"
	"github.com/HadleysDad/loot-api/internal/server"
)

func main() {
	configPath := flag.String("config", "loot-api.yml", "path to the YAML config file")
	addr := flag.String("addr", "", "listen address, overrides the config file")
	tablePath := flag.String("table", "", "path to the base loot table, overrides the config file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if config.HasRulesEnv() {
		cfg.Rules = config.RulesFromEnv()
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	handler, err := server.NewHandler(server.Options{
		Config:    cfg,
		TablePath: *tablePath,
		Logger:    log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
