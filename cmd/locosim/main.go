// Command locosim runs the locomotion pipeline headless, driven by a tengo
// input script, and logs a per-tick trace.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/logger"
	"github.com/milk9111/thirdperson/prefabs"
)

type options struct {
	level  string
	player string
	script string
	ticks  int
	dt     float64
	every  int
}

func main() {
	var opts options
	flag.StringVar(&opts.level, "level", "level.yaml", "level prefab")
	flag.StringVar(&opts.player, "player", "player.yaml", "player prefab")
	flag.StringVar(&opts.script, "script", "walk_square", "input script in prefabs/scripts")
	flag.IntVar(&opts.ticks, "ticks", 600, "number of ticks to simulate")
	flag.Float64Var(&opts.dt, "dt", 1.0/60, "seconds per tick")
	flag.IntVar(&opts.every, "every", 10, "log a trace line every n ticks (0 disables)")
	logLevel := flag.String("log", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("format", "console", "log format: console, text, json")
	sentryDSN := flag.String("sentry", "", "report errors to this Sentry DSN")
	flag.Parse()

	logger.Init(logger.Config{Level: *logLevel, Format: *logFormat, Output: os.Stderr})

	if *sentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: *sentryDSN}); err != nil {
			slog.Warn("sentry: init failed", "err", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	sum, err := run(opts)
	if err != nil {
		sentry.CaptureException(err)
		slog.Error("locosim: failed", "err", err)
		os.Exit(1)
	}
	sum.print(os.Stdout)
}

type summary struct {
	ticks     int
	distance  float64
	maxHeight float64
	jumps     int
	landings  int
	respawns  int
	clips     map[string]int
	final     string
}

func run(opts options) (*summary, error) {
	if opts.ticks <= 0 || opts.dt <= 0 {
		return nil, fmt.Errorf("locosim: ticks and dt must be positive")
	}

	playerSpec, err := prefabs.LoadPlayerSpec(opts.player)
	if err != nil {
		return nil, err
	}
	levelSpec, err := prefabs.LoadLevelSpec(opts.level)
	if err != nil {
		return nil, err
	}
	src, err := prefabs.LoadScript(opts.script)
	if err != nil {
		return nil, fmt.Errorf("locosim: load script %s: %w", opts.script, err)
	}
	axes, err := system.NewScriptedAxes(opts.script, src, opts.dt)
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, playerSpec, levelSpec)
	if err != nil {
		return nil, err
	}
	pipe := system.NewPipeline(axes, opts.dt, system.AxisSettings{})

	tr, _ := ecs.Get(w, scene.Player, component.TransformComponent.Kind())
	loco, _ := ecs.Get(w, scene.Player, component.LocomotionComponent.Kind())

	sum := &summary{clips: map[string]int{}, maxHeight: tr.Position.Y()}
	prev := tr.Position
	for tick := 0; tick < opts.ticks; tick++ {
		pipe.Update(w)

		for _, evt := range w.Events().Drain() {
			sum.record(evt)
		}

		step := tr.Position.Sub(prev)
		step[1] = 0
		sum.distance += step.Len()
		prev = tr.Position
		if tr.Position.Y() > sum.maxHeight {
			sum.maxHeight = tr.Position.Y()
		}

		if opts.every > 0 && tick%opts.every == 0 {
			res := loco.Last
			slog.Info("tick",
				"n", tick,
				"state", res.State.String(),
				"ground", res.Ground.String(),
				"pos", fmt.Sprintf("%.3f,%.3f,%.3f", tr.Position.X(), tr.Position.Y(), tr.Position.Z()),
				"vel_y", res.Velocity.Y(),
				"yaw", res.YawDelta,
			)
		}
	}

	sum.ticks = int(pipe.Ticks())
	sum.final = fmt.Sprintf("%.3f,%.3f,%.3f", tr.Position.X(), tr.Position.Y(), tr.Position.Z())
	return sum, nil
}

func (s *summary) record(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventJumped:
		s.jumps++
	case ecs.EventLanded:
		s.landings++
	case ecs.EventRespawned:
		s.respawns++
	case ecs.EventAnimationChanged:
		if change, ok := evt.Data.(ecs.AnimationChange); ok {
			s.clips[change.To]++
		} else {
			slog.Warn("locosim: unexpected animation payload", "data", evt.Data)
		}
	}
}

func (s *summary) print(out io.Writer) {
	fmt.Fprintf(out, "ticks      %d\n", s.ticks)
	fmt.Fprintf(out, "distance   %.3f\n", s.distance)
	fmt.Fprintf(out, "max height %.3f\n", s.maxHeight)
	fmt.Fprintf(out, "jumps      %d\n", s.jumps)
	fmt.Fprintf(out, "landings   %d\n", s.landings)
	fmt.Fprintf(out, "respawns   %d\n", s.respawns)
	fmt.Fprintf(out, "final pos  %s\n", s.final)
	for clip, n := range s.clips {
		fmt.Fprintf(out, "clip %-6s %d\n", clip, n)
	}
}
