package archive

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/samwightt/cbin/internal/schema"
)

// Stats are aggregate statistics over an archive. They are produced per
// block and merged with Add; the reduction is associative and
// order-independent, so block processing order never affects the totals.
type Stats struct {
	Blocks        int64 // blocks decoded successfully
	SkippedBlocks int64 // blocks that failed to parse
	Games         int64 // games replayed successfully
	SkippedGames  int64 // games whose replay failed
	Moves         int64 // moves across replayed games
	WhiteWins     int64
	BlackWins     int64
	Draws         int64
	Unknown       int64
}

// Add merges o into s.
func (s *Stats) Add(o Stats) {
	s.Blocks += o.Blocks
	s.SkippedBlocks += o.SkippedBlocks
	s.Games += o.Games
	s.SkippedGames += o.SkippedGames
	s.Moves += o.Moves
	s.WhiteWins += o.WhiteWins
	s.BlackWins += o.BlackWins
	s.Draws += o.Draws
	s.Unknown += o.Unknown
}

// AvgMovesPerGame returns the mean move count of replayed games.
func (s Stats) AvgMovesPerGame() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Moves) / float64(s.Games)
}

// Analyzer decodes an archive in parallel, one block per worker at a time,
// and reduces per-block statistics. Workers share only the read-only input
// buffer; each owns its rules-engine positions and accumulates into a local
// Stats merged under a single lock per block.
type Analyzer struct {
	workers int
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithWorkers sets the number of decode workers (default GOMAXPROCS).
func WithWorkers(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeFile reads the archive at path into one shared buffer and analyzes
// it.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (Stats, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read archive: %w", err)
	}
	return a.Analyze(ctx, buf)
}

// Analyze scans buf's blocks sequentially and fans them out to workers.
// Corrupt blocks and unresolvable games are counted in the returned Stats,
// not returned as errors; the only error paths are I/O and cancellation.
func (a *Analyzer) Analyze(ctx context.Context, buf []byte) (Stats, error) {
	blocks := make(chan []byte)

	var (
		mu    sync.Mutex
		total Stats
	)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < a.workers; i++ {
		g.Go(func() error {
			for payload := range blocks {
				st := analyzeBlock(payload)
				mu.Lock()
				total.Add(st)
				mu.Unlock()
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(blocks)
		sc := NewBlockScanner(buf)
		for {
			payload, ok := sc.Next()
			if !ok {
				return nil
			}
			select {
			case blocks <- payload:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return total, nil
}

func analyzeBlock(payload []byte) Stats {
	res, err := DecodeBlock(payload)
	if err != nil {
		return Stats{SkippedBlocks: 1}
	}
	st := Stats{Blocks: 1, SkippedGames: int64(res.SkippedGames)}
	for _, dg := range res.Games {
		st.Games++
		st.Moves += int64(len(dg.Moves))
		switch dg.Result {
		case schema.ResultWhiteWin:
			st.WhiteWins++
		case schema.ResultBlackWin:
			st.BlackWins++
		case schema.ResultDraw:
			st.Draws++
		default:
			st.Unknown++
		}
	}
	return st
}
