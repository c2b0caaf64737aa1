package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/motion-snake/internal/commentary"
	"github.com/vovakirdan/motion-snake/internal/config"
	"github.com/vovakirdan/motion-snake/internal/core"
	"github.com/vovakirdan/motion-snake/internal/game"
	"github.com/vovakirdan/motion-snake/internal/leaderboard"
	"github.com/vovakirdan/motion-snake/internal/platform/tui"
	"github.com/vovakirdan/motion-snake/internal/session"
	"github.com/vovakirdan/motion-snake/internal/vision/capture"
)

var (
	flagCamera     int
	flagNoCamera   bool
	flagCommentary string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play motion-controlled snake",
	Long: `Start a game. Steering is webcam-only: lean or wave in the
direction you want the snake to go. The keyboard is used just for the
menu and for quitting.

Controls:
  Enter      - Start (after typing your name)
  R          - Replay (after game over)
  Q/Esc      - Quit (Ctrl+C anywhere)

Examples:
  mosnake play
  mosnake play --camera 1
  mosnake play --no-camera
  mosnake play --commentary ws://localhost:8765/feed
  mosnake play --config ./my-mosnake.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagCamera, "camera", -1, "Camera device index (overrides config)")
	playCmd.Flags().BoolVar(&flagNoCamera, "no-camera", false, "Use a synthetic moving target instead of the webcam")
	playCmd.Flags().StringVar(&flagCommentary, "commentary", "", "Commentary WebSocket URL (overrides config)")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// Get terminal size early; the grid is fixed from it for the run
	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	runtime.TickRate = flagFPS
	runtime.Seed = seed

	// Open the camera (or the synthetic source) before taking over the
	// terminal, so device errors print normally.
	source, err := openSource(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening camera: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try --camera <index>, or --no-camera for a demo without hardware.")
		os.Exit(1)
	}
	defer source.Close()

	// Open score storage
	board := leaderboard.Board{}
	store, err := leaderboard.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
		if board, err = store.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not load scores: %v\n", err)
			board = leaderboard.Board{}
		}
	}

	cols, rows := game.ConfigureGrid(runtime.ScreenW, runtime.ScreenH)

	// The TUI owns the terminal from here on, so nothing may write to
	// stderr until it exits.
	quiet := log.New(io.Discard)

	opts := session.Options{
		Cols:      cols,
		Rows:      rows,
		Seed:      seed,
		Speed:     cfg.Speed.Game(),
		Extractor: cfg.Vision.Extractor(),
		Arbiter:   cfg.Control.Arbiter(),
		Board:     board,
		Logger:    quiet,
	}
	if store != nil {
		opts.Store = store
	}

	commentaryURL := cfg.Commentary.URL
	if flagCommentary != "" {
		commentaryURL = flagCommentary
	}

	var ctrl *session.Controller
	var client *commentary.Client
	if commentaryURL != "" {
		client = commentary.New(commentaryURL, func(s commentary.Status) {
			if ctrl != nil {
				ctrl.SetLinkStatus(s.String())
			}
		}, quiet)
		opts.Sink = client
	}

	ctrl = session.NewController(opts)
	if client != nil {
		ctrl.SetLinkStatus(commentary.StatusConnecting.String())
		client.Connect()
		defer client.Close()
	}

	if err := tui.Run(ctrl, source, runtime); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// openSource picks the frame source from flags and config.
func openSource(cfg config.Config) (capture.Source, error) {
	if flagNoCamera {
		w, h := cfg.Camera.Width, cfg.Camera.Height
		return capture.NewSynthetic(w, h, 0), nil
	}

	cam := cfg.Camera.Webcam()
	if flagCamera >= 0 {
		cam.Device = flagCamera
	}
	return capture.OpenWebcam(cam)
}
