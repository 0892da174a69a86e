package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlay")
	levelName := flag.String("level", "level.yaml", "level prefab in prefabs/")
	playerName := flag.String("player", "player.yaml", "player prefab in prefabs/")
	scriptName := flag.String("script", "", "drive the player from a tengo script in prefabs/scripts instead of the keyboard")
	statsAddr := flag.String("stats", "", "serve runtime stats on this address, e.g. localhost:18066")
	sentryDSN := flag.String("sentry", "", "report errors to this Sentry DSN")
	watch := flag.Bool("watch", false, "hot reload prefabs from disk")
	flag.Parse()

	level := "info"
	if *debug {
		level = "debug"
	}
	logger.Init(logger.Config{Level: level, Format: "console"})

	if *sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: *sentryDSN, AttachStacktrace: true}); err != nil {
			slog.Warn("sentry: init failed", "err", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if *statsAddr != "" {
		viewer.SetConfiguration(viewer.WithAddr(*statsAddr))
		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
		slog.Info("stats: serving", "addr", "http://"+*statsAddr+"/debug/statsview")
	}

	game, err := NewGame(Options{
		Level:  *levelName,
		Player: *playerName,
		Script: *scriptName,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		fail(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("thirdperson")

	if err := ebiten.RunGame(game); err != nil {
		fail(err)
	}
}

func fail(err error) {
	sentry.CaptureException(err)
	sentry.Flush(2 * time.Second)
	slog.Error("game: exiting", "err", err)
	os.Exit(1)
}
