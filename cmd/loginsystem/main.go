package main

import (
	"log"

	"github.com/InSantoshMahto/login-system/internal/app"
	"github.com/InSantoshMahto/login-system/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
