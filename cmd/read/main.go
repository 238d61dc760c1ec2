package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samwightt/cbin/internal/archive"
	"github.com/samwightt/cbin/internal/logx"
)

func main() {
	var (
		archivePath = flag.String("archive", "", "Path to .cbin archive")
		workers     = flag.Int("workers", 0, "Decode workers (0 = GOMAXPROCS)")
	)
	flag.Parse()

	if *archivePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: read --archive <file.cbin> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := logx.NewLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []archive.AnalyzerOption
	if *workers > 0 {
		opts = append(opts, archive.WithWorkers(*workers))
	}

	startTime := time.Now()
	stats, err := archive.NewAnalyzer(opts...).AnalyzeFile(ctx, *archivePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("analyze failed")
	}
	logger.Info().Dur("elapsed", time.Since(startTime)).Msg("analyze complete")

	// Skipped counts are printed unconditionally so a lossy decode is never
	// indistinguishable from a clean one.
	fmt.Printf("Blocks:           %d\n", stats.Blocks)
	fmt.Printf("Skipped blocks:   %d\n", stats.SkippedBlocks)
	fmt.Printf("Games:            %d\n", stats.Games)
	fmt.Printf("Skipped games:    %d\n", stats.SkippedGames)
	fmt.Printf("Avg moves/game:   %.1f\n", stats.AvgMovesPerGame())
	fmt.Printf("White wins:       %d\n", stats.WhiteWins)
	fmt.Printf("Black wins:       %d\n", stats.BlackWins)
	fmt.Printf("Draws:            %d\n", stats.Draws)
	fmt.Printf("Unknown results:  %d\n", stats.Unknown)
}
