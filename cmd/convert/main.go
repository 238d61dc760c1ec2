package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"github.com/samwightt/cbin/internal/archive"
	"github.com/samwightt/cbin/internal/logx"
)

func main() {
	var (
		inputPath        = flag.String("pgn", "", "Path to PGN file (supports .zst)")
		outputPath       = flag.String("out", "", "Output archive path (default: input with .cbin extension)")
		maxGamesPerBlock = flag.Int("max-games-per-block", archive.DefaultMaxGamesPerBlock, "Finish a block after this many games")
		exactOrigins     = flag.Bool("exact-origins", false, "Store exact origin squares and check status instead of disambiguation hints")
		maxGames         = flag.Int("max-games", 0, "Maximum games to convert (0 = unlimited)")
	)
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: convert --pgn <file.pgn[.zst]> [options]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	out := *outputPath
	if out == "" {
		out = deriveOutputPath(*inputPath)
	}

	logger := logx.NewLogger()
	logger.Info().
		Str("pgn", *inputPath).
		Str("output", out).
		Int("max_games_per_block", *maxGamesPerBlock).
		Bool("exact_origins", *exactOrigins).
		Msg("starting convert")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := convert(ctx, logger, *inputPath, out, *maxGamesPerBlock, *exactOrigins, *maxGames); err != nil {
		logger.Fatal().Err(err).Msg("convert failed")
	}
}

func convert(ctx context.Context, logger zerolog.Logger, inputPath, outputPath string, maxGamesPerBlock int, exactOrigins bool, maxGames int) (err error) {
	in, err := openInput(inputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	bw := bufio.NewWriterSize(f, 1<<20)

	ser := archive.NewSerializer(bw, archive.WithMaxGamesPerBlock(maxGamesPerBlock))
	var opts []archive.ConverterOption
	if exactOrigins {
		opts = append(opts, archive.WithExactOrigins())
	}
	conv := archive.NewConverter(ser, opts...)

	// The final block only reaches the output if it is flushed; guarantee
	// that on error exits too, then drain the buffered writer.
	flushed := false
	defer func() {
		if !flushed {
			if ferr := conv.Flush(); err == nil {
				err = ferr
			}
		}
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
		if ferr := f.Close(); err == nil {
			err = ferr
		}
	}()

	startTime := time.Now()
	lastLog := time.Now()

	sc := chess.NewScanner(in)
gameLoop:
	for sc.Scan() {
		select {
		case <-ctx.Done():
			logger.Info().Msg("interrupted, flushing...")
			break gameLoop
		default:
		}

		if err := conv.AddGame(sc.Next()); err != nil {
			return err
		}

		if maxGames > 0 && conv.GameCount() >= int64(maxGames) {
			logger.Info().Int64("games", conv.GameCount()).Msg("reached max games limit")
			break
		}

		if time.Since(lastLog) > 10*time.Second {
			elapsed := time.Since(startTime)
			logger.Info().
				Int64("games", conv.GameCount()).
				Int64("blocks", ser.BlocksWritten()).
				Float64("games_per_sec", float64(conv.GameCount())/elapsed.Seconds()).
				Msg("convert progress")
			lastLog = time.Now()
		}
	}
	if serr := sc.Err(); serr != nil && !errors.Is(serr, io.EOF) {
		return fmt.Errorf("parse pgn: %w", serr)
	}

	flushed = true
	if err := conv.Flush(); err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	logger.Info().
		Int64("games", conv.GameCount()).
		Int64("blocks", ser.BlocksWritten()).
		Dur("elapsed", elapsed).
		Float64("games_per_sec", float64(conv.GameCount())/elapsed.Seconds()).
		Str("output", outputPath).
		Msg("convert complete")
	return nil
}

// deriveOutputPath strips a trailing .zst, then the notation extension, and
// appends .cbin: games.pgn.zst -> games.cbin.
func deriveOutputPath(in string) string {
	out := strings.TrimSuffix(in, ".zst")
	out = strings.TrimSuffix(out, filepath.Ext(out))
	return out + ".cbin"
}

// openInput opens path, transparently decompressing .zst files.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &zstdFile{Reader: dec, dec: dec, f: f}, nil
}

type zstdFile struct {
	io.Reader
	dec *zstd.Decoder
	f   *os.File
}

func (z *zstdFile) Close() error {
	z.dec.Close()
	return z.f.Close()
}
