package main

import (
	"log"

	"github.com/shaharia-lab/todo/cmd"
	"github.com/shaharia-lab/todo/internal/config"
)

func main() {
	assets, err := getFrontendFS()
	if err != nil {
		log.Fatalf("failed to load frontend assets: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Mode == "" {
		cfg.Mode = defaultMode
	}

	cmd.Execute(cfg, assets)
}
