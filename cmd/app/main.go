package main

import (
	"context"
	"flag"
	"log"
	"os"

	"BulletCatalyst/internal/di"
	"BulletCatalyst/pkg/config"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "config file path")
	dryRun := flag.Bool("dry-run", false, "print the prompt corpus and exit")
	probe := flag.String("probe", "", "check one provider (openai|xai|groq) and exit")
	serve := flag.Bool("serve", false, "run the HTTP API with the cron schedule")
	flag.Parse()

	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	log.Printf("env=%s feeds=%d", cfg.Environment, len(cfg.Feeds.URLs))

	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	ctx := context.Background()

	switch {
	case *probe != "":
		code, err := app.Probe(ctx, *probe)
		if err != nil {
			log.Fatalf("probe: %v", err)
		}
		os.Exit(code)
	case *dryRun:
		if err := app.DryRun(ctx); err != nil {
			log.Printf("dry run error: %v", err)
			os.Exit(1)
		}
	case *serve:
		if err := app.Serve(); err != nil {
			log.Printf("app error: %v", err)
			os.Exit(1)
		}
	default:
		if err := app.RunOnce(ctx); err != nil {
			log.Printf("run error: %v", err)
			os.Exit(1)
		}
	}
}
