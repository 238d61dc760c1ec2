package archive

import (
	"encoding/binary"
	"fmt"
	"io"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/samwightt/cbin/internal/schema"
)

// DefaultMaxGamesPerBlock is the games-per-block threshold used when none is
// configured. It trades decode parallelism granularity against per-block
// overhead (schema wrapper bytes, reduced cross-game move dedup) and bounds
// the dedup table's memory.
const DefaultMaxGamesPerBlock = 500_000

// Serializer writes games in length-prefixed blocks. FlatBuffers
// serialization happens in memory, and block-internal references are 32-bit
// offsets, so a block must stay under 4GiB; the serializer chunks the stream
// by finishing the current block once maxGamesPerBlock games have been added.
//
// Moves are deduplicated per block: adding an identical Move value twice
// returns the same offset without writing new bytes. The dedup table, the
// game list, and the builder arena all live exactly as long as the current
// block and are reset together on flush; identical moves in different blocks
// are encoded independently, which keeps blocks self-contained.
type Serializer struct {
	w                io.Writer
	builder          *flatbuffers.Builder
	moveMap          map[schema.Move]flatbuffers.UOffsetT
	games            []flatbuffers.UOffsetT
	maxGamesPerBlock int

	gamesWritten  int64
	blocksWritten int64
	lenBuf        [4]byte
}

// SerializerOption configures a Serializer.
type SerializerOption func(*Serializer)

// WithMaxGamesPerBlock sets the games-per-block flush threshold.
func WithMaxGamesPerBlock(n int) SerializerOption {
	return func(s *Serializer) {
		if n > 0 {
			s.maxGamesPerBlock = n
		}
	}
}

// NewSerializer creates a serializer writing blocks to w.
func NewSerializer(w io.Writer, opts ...SerializerOption) *Serializer {
	s := &Serializer{
		w:                w,
		builder:          flatbuffers.NewBuilder(1 << 16),
		moveMap:          make(map[schema.Move]flatbuffers.UOffsetT),
		maxGamesPerBlock: DefaultMaxGamesPerBlock,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddMove adds a move to the current block and returns its offset, reusing
// the already-serialized table if an equal move was added to this block
// before. Safe to call any number of times with the same value; the block
// does not grow after the first.
func (s *Serializer) AddMove(m schema.Move) flatbuffers.UOffsetT {
	if off, ok := s.moveMap[m]; ok {
		return off
	}
	off := schema.AppendMove(s.builder, m)
	s.moveMap[m] = off
	return off
}

// AddGame serializes a game referencing moves previously returned by AddMove
// and appends it to the current block. When the block reaches the configured
// games-per-block threshold it is finished and written out, which is the
// only way AddGame can fail.
func (s *Serializer) AddGame(result schema.GameResult, startFEN string, moves []flatbuffers.UOffsetT) error {
	s.games = append(s.games, schema.AppendGame(s.builder, result, startFEN, moves))
	if len(s.games) >= s.maxGamesPerBlock {
		return s.FinishCurrentBlock()
	}
	return nil
}

// FinishCurrentBlock wraps the accumulated games into a Block, writes its
// 4-byte little-endian length prefix and payload, and resets the builder,
// dedup table, and game list for the next block. With zero accumulated games
// it still writes a valid empty block.
//
// The in-memory state is reset before the write, so a write error loses the
// block's games: the caller gets the error, but there is nothing left to
// retry with.
func (s *Serializer) FinishCurrentBlock() error {
	payload := schema.FinishBlock(s.builder, s.games)
	n := len(s.games)
	s.reset()

	binary.LittleEndian.PutUint32(s.lenBuf[:], uint32(len(payload)))
	if _, err := s.w.Write(s.lenBuf[:]); err != nil {
		return fmt.Errorf("write block length: %w", err)
	}
	if _, err := s.w.Write(payload); err != nil {
		return fmt.Errorf("write block payload: %w", err)
	}
	s.gamesWritten += int64(n)
	s.blocksWritten++
	return nil
}

// reset clears per-block state. The builder keeps its buffer; the payload
// slice returned by FinishBlock stays readable until the builder is written
// to again.
func (s *Serializer) reset() {
	s.builder.Reset()
	clear(s.moveMap)
	s.games = s.games[:0]
}

// GamesInBlock returns the number of games accumulated in the current,
// unfinished block.
func (s *Serializer) GamesInBlock() int { return len(s.games) }

// GamesWritten returns the total games flushed to the writer.
func (s *Serializer) GamesWritten() int64 { return s.gamesWritten }

// BlocksWritten returns the number of blocks flushed to the writer.
func (s *Serializer) BlocksWritten() int64 { return s.blocksWritten }
