// Command blogfront serves the iU 学友会 blog front-end.
//
// Configuration comes from environment variables (optionally via .env)
// and an optional site.yaml; see SiteConfig.
package main

import (
	"log"

	"github.com/iu-gakuyukai/blogfront"
	"github.com/iu-gakuyukai/blogfront/internal/logger"
)

func main() {
	logger.InitFromEnv("LOG_LEVEL")

	cfg, err := blogfront.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app := blogfront.New(cfg)
	defer app.Close()

	logger.Log.Infof("starting blogfront on %s (cms: %s)", cfg.Addr, cfg.CMSBaseURL)
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
