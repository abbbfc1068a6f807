package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Suv00m/movis/internal/config"
	"github.com/Suv00m/movis/internal/engine"
)

func main() {
	configPtr := flag.String("config", "", "Path to the composition yaml")
	timesPtr := flag.String("times", "0", "Comma-separated timestamps (seconds) to render")
	outPtr := flag.String("out", "output", "Directory for rendered PNG frames")
	verbosePtr := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
	if *verbosePtr {
		log = log.Level(zerolog.DebugLevel)
	}

	if *configPtr == "" {
		flag.Usage()
		os.Exit(2)
	}

	times, err := parseTimes(*timesPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -times")
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatal().Err(err).Msg("loading composition")
	}
	log.Info().
		Int("width", cfg.Width).Int("height", cfg.Height).
		Float64("duration", cfg.Duration).Int("layers", len(cfg.Layers)).
		Msg("composition loaded")

	cmp, err := engine.Build(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building composition")
	}
	defer cmp.Close()

	if err := cmp.Preload(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("preloading assets")
	}

	if err := os.MkdirAll(*outPtr, 0755); err != nil {
		log.Fatal().Err(err).Msg("creating output directory")
	}

	for _, t := range times {
		frame, err := cmp.CompositeFrame(t)
		if err != nil {
			log.Fatal().Err(err).Float64("time", t).Msg("compositing frame")
		}
		path := filepath.Join(*outPtr, fmt.Sprintf("frame_%07.2fs.png", t))
		if err := writePNG(path, frame); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("writing frame")
		}
		cmp.ReleaseFrame(frame)
		log.Info().Float64("time", t).Str("path", path).Msg("frame rendered")
	}
}

func parseTimes(s string) ([]float64, error) {
	var times []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("timestamp %q: %w", part, err)
		}
		times = append(times, t)
	}
	if len(times) == 0 {
		return nil, fmt.Errorf("no timestamps given")
	}
	return times, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
