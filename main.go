package main

import (
	"embed"
	"flag"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/chazu/ringforge/pkg/config"
	"github.com/chazu/ringforge/pkg/logging"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Warn("using default config", "err", err)
	}
	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.Warn("bad log level", "level", cfg.Log.Level, "err", err)
	}

	app := NewApp(cfg, *configPath)

	err = wails.Run(&options.App{
		Title:     cfg.Window.Title,
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		MinWidth:  640,
		MinHeight: 480,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 255},
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnShutdown:       app.shutdown,
		Logger:           logging.WailsLogger{},
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logging.Error("wails run failed", "err", err)
		os.Exit(1)
	}
}
