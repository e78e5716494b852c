// Command gfxdemo opens a window and draws the gfx triangle.
//
// Usage:
//
//	gfxdemo [-config gfx.yaml] [-width 800] [-height 600] [-color crimson]
//	gfxdemo -check-shader
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/gogpu/gfx"
	"github.com/gogpu/gfx/internal/sdlwindow"
)

func init() {
	// SDL and the presentation surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath  = flag.String("config", "", "YAML config file")
		width       = flag.Int("width", 0, "window width (overrides config)")
		height      = flag.Int("height", 0, "window height (overrides config)")
		title       = flag.String("title", "", "window title (overrides config)")
		color       = flag.String("color", "", "flat triangle color: SVG name or #rrggbb[aa]")
		logLevel    = flag.String("log-level", "", "debug, info, warn or error")
		checkShader = flag.Bool("check-shader", false, "compile the shader with naga and exit")
	)
	flag.Parse()

	if *checkShader {
		words, err := gfx.CompileShader()
		if err != nil {
			log.Fatalf("Shader check failed: %v", err)
		}
		fmt.Printf("shader OK: %d SPIR-V words\n", len(words))
		return
	}

	cfg := gfx.DefaultConfig()
	if *configPath != "" {
		loaded, err := gfx.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *width > 0 || *height > 0 {
		w, h := cfg.Width, cfg.Height
		if *width > 0 {
			w = *width
		}
		if *height > 0 {
			h = *height
		}
		cfg = cfg.WithSize(w, h)
	}
	if *title != "" {
		cfg = cfg.WithTitle(*title)
	}
	if *color != "" {
		cfg = cfg.WithColor(*color)
	}
	if *logLevel != "" {
		cfg = cfg.WithLogLevel(*logLevel)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	level, _ := cfg.SlogLevel()
	gfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg gfx.Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("init SDL: %w", err)
	}
	defer sdl.Quit()

	window, err := sdlwindow.Open(cfg)
	if err != nil {
		return err
	}
	defer window.Close()

	state, err := gfx.New(window, gfx.WithConfig(cfg))
	if err != nil {
		return err
	}
	defer state.Close()

	var tick <-chan time.Time
	if cfg.FramesPerSecond > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.FramesPerSecond))
		defer ticker.Stop()
		tick = ticker.C
	}

	gfx.Logger().Info("gfxdemo: running", "size", state.Size(), "format", state.SurfaceFormat())
	for {
		quit, err := pollEvents(state, window)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
		if err := state.Render(); err != nil {
			return err
		}
		if tick != nil {
			<-tick
		}
	}
}

// pollEvents drains the SDL event queue. It reports whether the user asked
// to quit. Window events for other windows are ignored.
func pollEvents(state *gfx.State, window *sdlwindow.Window) (bool, error) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.QuitEvent:
			return true, nil
		case *sdl.KeyboardEvent:
			if et.Type == sdl.KEYDOWN && et.Keysym.Sym == sdl.K_ESCAPE {
				return true, nil
			}
		case *sdl.WindowEvent:
			if !window.Owns(et) {
				continue
			}
			if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				if err := state.Resize(state.Window().Size()); err != nil {
					return false, err
				}
			}
		}
	}
	return false, nil
}
