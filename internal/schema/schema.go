// Package schema defines the cbin archive schema and its FlatBuffers wire
// encoding.
//
// The on-disk unit is a Block: one self-contained FlatBuffers table graph
// Block -> Archive -> [Game] -> [Move]. Composite tables reference nested
// tables by 32-bit offset into the shared buffer, so a reader never copies;
// it just follows offsets. Games reference their moves by offset, which is
// what makes per-block move deduplication possible: two games pointing at the
// same offset share one physical Move table.
//
// The package has three faces:
//   - Move: a plain comparable value, used as the dedup map key on the
//     encode side.
//   - AppendMove / AppendGame / FinishBlock: builder helpers that lay tables
//     out into a flatbuffers.Builder.
//   - MoveRef / GameRef / ArchiveRef / BlockRef: zero-copy views over a
//     finished block's bytes.
//
// Optional fields (promotion, castle, disambiguation) are presence-encoded:
// an absent vtable slot reads back as the None sentinel. The archive field on
// Block is union-tagged; the tag is the format's single forward-extension
// point.
package schema

// Move is the compact representation of one chess move. It deliberately
// omits anything a rules engine can rederive from the position: the origin
// square is only carried as far as disambiguation requires (a file and/or
// rank hint), or exactly (From plus IsCheck) when the encoder was asked for
// exact origins.
//
// A castling move sets MovedPiece to PieceKing and Castle to the side;
// every other field stays at its zero value.
//
// Move is a pure value: it is comparable, and two Moves with equal fields
// must serialize to one physical table within a block.
type Move struct {
	MovedPiece    Piece
	To            Square
	IsCapture     bool
	PromotedPiece Piece
	Castle        CastleKind
	FromFile      File
	FromRank      Rank
	From          Square
	// IsCheck is only meaningful when From is set (the exact-origin
	// variant); it is not serialized otherwise.
	IsCheck bool
}

// Vtable slots for the Move table. Optional slots are simply absent when the
// field is None.
const (
	moveSlotMovedPiece = iota
	moveSlotTo
	moveSlotIsCapture
	moveSlotPromotedPiece
	moveSlotCastle
	moveSlotFromFile
	moveSlotFromRank
	moveSlotFrom
	moveSlotIsCheck
	moveNumSlots
)

// Vtable slots for the Game table.
const (
	gameSlotResult = iota
	gameSlotStartPosition
	gameSlotMoves
	gameNumSlots
)

// Vtable slots for Archive and Block.
const (
	archiveSlotGames = iota
	archiveNumSlots
)

const (
	blockSlotArchiveType = iota
	blockSlotArchive
	blockNumSlots
)
