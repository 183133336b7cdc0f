package main

import (
	"context"
	"log"

	"github.com/dpolishuk/repoprofile/backend/internal/config"
	"github.com/dpolishuk/repoprofile/backend/internal/server"
)

func main() {
	cfg := config.Load()

	svc := server.NewServices(context.Background(), cfg)
	defer svc.Close()

	app := server.NewApp(svc)

	log.Printf("Starting RepoProfile backend on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
