package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/motion-snake/internal/config"
	"github.com/vovakirdan/motion-snake/internal/control"
	"github.com/vovakirdan/motion-snake/internal/game"
	"github.com/vovakirdan/motion-snake/internal/vision"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Print the live motion vector for threshold tuning",
	Long: `Grab frames from the camera and print the raw and smoothed
motion vectors a few times a second, together with the direction the
arbiter would pick. Use it to tune sensitivity, noise_threshold and
dead_zone in the config file for your lighting and camera placement.

Press Ctrl+C to stop.

Examples:
  mosnake calibrate
  mosnake calibrate --camera 1
  mosnake calibrate --no-camera`,
	Args: cobra.NoArgs,
	Run:  runCalibrate,
}

func init() {
	calibrateCmd.Flags().IntVar(&flagCamera, "camera", -1, "Camera device index (overrides config)")
	calibrateCmd.Flags().BoolVar(&flagNoCamera, "no-camera", false, "Use a synthetic moving target instead of the webcam")
}

func runCalibrate(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}

	source, err := openSource(cfg)
	if err != nil {
		logger.Fatal("opening camera", "err", err)
	}
	defer source.Close()

	extractor := vision.NewExtractor(cfg.Vision.Extractor())
	arbiter := control.NewArbiter(cfg.Control.Arbiter())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(flagFPS))
	defer ticker.Stop()

	logger.Info("calibrating; move in front of the camera",
		"sensitivity", cfg.Vision.Sensitivity,
		"noise_threshold", cfg.Vision.NoiseThreshold,
		"dead_zone", cfg.Control.DeadZone)

	dir := game.DirRight
	lastPrint := time.Time{}
	for {
		select {
		case <-sigs:
			fmt.Println()
			logger.Info("calibration stopped")
			return
		case <-ticker.C:
		}

		frame, err := source.Grab()
		if err != nil {
			logger.Warn("frame grab failed", "err", err)
			continue
		}

		raw := extractor.Extract(frame)
		dir = arbiter.Arbitrate(raw, dir)
		smoothed := arbiter.Smoothed()

		// The pipeline runs at full rate; the readout is throttled so
		// the terminal stays readable.
		if time.Since(lastPrint) < 200*time.Millisecond {
			continue
		}
		lastPrint = time.Now()

		fmt.Printf("\rraw(%+.2f,%+.2f)  smoothed(%+.2f,%+.2f)  changed=%d  dir=%-5s ",
			raw.X, raw.Y, smoothed.X, smoothed.Y, raw.Intensity, dir)
	}
}
