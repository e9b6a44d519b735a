package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/SebJones333/Receipt-Scanner/internal/extraction"
	"github.com/SebJones333/Receipt-Scanner/internal/ocr"
	repo "github.com/SebJones333/Receipt-Scanner/internal/repository"
)

// scan is the offline CLI: OCR text in (file or stdin), extraction JSON out.
// With -history it also keeps a local sqlite log of past scans.
func main() {
	var (
		file    = flag.String("file", "", "path to an OCR text file (default: read stdin)")
		history = flag.String("history", os.Getenv("SCAN_HISTORY_PATH"), "path to a local sqlite scan history (optional)")
		last    = flag.Int("last", 0, "print the N most recent history entries and exit")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var hist *repo.History
	if *history != "" {
		h, err := repo.OpenHistory(*history)
		if err != nil {
			logger.Error("open history", "path", *history, "error", err)
			os.Exit(1)
		}
		defer func() { _ = h.Close() }()
		hist = h
	}

	if *last > 0 {
		if hist == nil {
			logger.Error("-last requires -history")
			os.Exit(2)
		}
		entries, err := hist.Recent(ctx, *last)
		if err != nil {
			logger.Error("read history", "error", err)
			os.Exit(1)
		}
		for _, e := range entries {
			fmt.Printf("%s  %-12s %s  %s (%s)\n",
				e.ScannedAt.Local().Format("2006-01-02 15:04"), e.Store, e.Date, e.Total, e.Source)
		}
		return
	}

	text, err := readInput(*file)
	if err != nil {
		logger.Error("read input", "error", err)
		os.Exit(1)
	}

	now := time.Now()
	res, err := extraction.Extract(ocr.Normalize(text), now)
	if err != nil {
		logger.Error("extract", "error", err)
		os.Exit(1)
	}

	if hist != nil {
		if err := hist.Record(ctx, res, now); err != nil {
			logger.Warn("record history", "error", err)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
