package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/entity"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/locomotion"
	"github.com/milk9111/thirdperson/prefabs"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Options struct {
	Level  string
	Player string
	Script string
	Debug  bool
	Watch  bool
}

type Game struct {
	opts  Options
	world *ecs.World
	pipe  *system.Pipeline
	scene entity.Scene

	watcher *prefabs.Watcher
	face    text.Face

	lastEvent string
}

func NewGame(opts Options) (*Game, error) {
	playerSpec, err := prefabs.LoadPlayerSpec(opts.Player)
	if err != nil {
		return nil, err
	}
	levelSpec, err := prefabs.LoadLevelSpec(opts.Level)
	if err != nil {
		return nil, err
	}

	dt := 1.0 / float64(ebiten.DefaultTPS)
	src, err := newAxesSource(opts.Script, dt)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	scene, err := entity.BuildScene(world, playerSpec, levelSpec)
	if err != nil {
		return nil, fmt.Errorf("game: build scene: %w", err)
	}

	settings := system.AxisSettings{
		Sensitivity: playerSpec.Input.Sensitivity,
		Gravity:     playerSpec.Input.Gravity,
		Dead:        playerSpec.Input.Dead,
		Snap:        playerSpec.Input.Snap,
	}
	g := &Game{
		opts:  opts,
		world: world,
		pipe:  system.NewPipeline(src, dt, settings),
		scene: scene,
		face:  text.NewGoXFace(basicfont.Face7x13),
	}

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			slog.Warn("game: hot reload disabled", "err", err)
		} else {
			g.watcher = w
		}
	}

	slog.Info("game: started", "level", levelSpec.Name, "player", opts.Player, "script", opts.Script, "tps", ebiten.DefaultTPS)
	return g, nil
}

// newAxesSource returns keyboard input, or a scripted source when name is set.
func newAxesSource(name string, dt float64) (locomotion.Axes, error) {
	if name == "" {
		return newKeyboardAxes(), nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("game: load script %s: %w", name, err)
	}
	axes, err := system.NewScriptedAxes(name, src, dt)
	if err != nil {
		return nil, err
	}
	return axes, nil
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.drainWatcher()
	g.pipe.Update(g.world)

	for _, evt := range g.world.Events().Drain() {
		g.onEvent(evt)
	}
	return nil
}

func (g *Game) onEvent(evt ecs.Event) {
	switch evt.Type {
	case ecs.EventAnimationChanged:
		change, ok := evt.Data.(ecs.AnimationChange)
		if !ok {
			slog.Warn("game: unexpected animation payload", "data", evt.Data)
			return
		}
		slog.Debug("animation: clip changed", "entity", change.Entity, "from", change.From, "to", change.To)
	default:
		slog.Debug("game: event", "type", evt.Type, "data", evt.Data)
		g.lastEvent = evt.Type
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if err := g.reload(path); err != nil {
				slog.Warn("game: reload failed", "file", path, "err", err)
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				slog.Warn("game: watcher error", "err", err)
			}
		default:
			return
		}
	}
}

var errRestartRequired = errors.New("change requires a restart")

func (g *Game) reload(path string) error {
	name := filepath.Base(path)
	switch {
	case name == filepath.Base(g.opts.Player):
		spec, err := prefabs.LoadPlayerSpec(g.opts.Player)
		if err != nil {
			return err
		}
		g.pipe.Reload.Queue(spec.Movement)
		slog.Info("game: player movement reloaded", "file", name)
	case g.opts.Script != "" && scriptBase(name) == scriptBase(g.opts.Script):
		src, err := newAxesSource(g.opts.Script, 1.0/float64(ebiten.DefaultTPS))
		if err != nil {
			return err
		}
		g.pipe.Input.SetSource(src)
		slog.Info("game: input script reloaded", "file", name)
	case name == filepath.Base(g.opts.Level):
		return errRestartRequired
	}
	return nil
}

func scriptBase(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".tengo")
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
