package schema

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// The *Ref types are zero-copy views into a finished block's bytes, in the
// shape flatc would generate: each wraps a flatbuffers.Table positioned at
// its table's root. They must only be used on buffers produced by this
// package (or validated upstream); out-of-range offsets in corrupt input
// make the underlying runtime panic, which the decoder turns into a
// corrupt-block error.

// vtable byte offset for a field slot.
func fieldOff(slot int) flatbuffers.VOffsetT {
	return flatbuffers.VOffsetT(4 + 2*slot)
}

// BlockRef is a view of a Block table.
type BlockRef struct {
	_tab flatbuffers.Table
}

// GetRootAsBlock positions a BlockRef at the root of buf.
func GetRootAsBlock(buf []byte, offset flatbuffers.UOffsetT) *BlockRef {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &BlockRef{}
	x._tab.Bytes = buf
	x._tab.Pos = n + offset
	return x
}

// ArchiveType returns the union tag for the archive field.
func (rcv *BlockRef) ArchiveType() ArchiveType {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(blockSlotArchiveType)))
	if o != 0 {
		return ArchiveType(rcv._tab.GetByte(o + rcv._tab.Pos))
	}
	return ArchiveTypeNONE
}

// Archive positions obj at the block's archive table. Callers must have
// checked that ArchiveType is ArchiveTypeArchive.
func (rcv *BlockRef) Archive(obj *ArchiveRef) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(blockSlotArchive)))
	if o == 0 {
		return false
	}
	obj._tab.Bytes = rcv._tab.Bytes
	obj._tab.Pos = rcv._tab.Indirect(o + rcv._tab.Pos)
	return true
}

// ArchiveRef is a view of an Archive table.
type ArchiveRef struct {
	_tab flatbuffers.Table
}

// GamesLength returns the number of games in the archive.
func (rcv *ArchiveRef) GamesLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(archiveSlotGames)))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

// Games positions obj at the j-th game.
func (rcv *ArchiveRef) Games(obj *GameRef, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(archiveSlotGames)))
	if o == 0 {
		return false
	}
	x := rcv._tab.Vector(o)
	x += flatbuffers.UOffsetT(j) * flatbuffers.SizeUOffsetT
	obj._tab.Bytes = rcv._tab.Bytes
	obj._tab.Pos = rcv._tab.Indirect(x)
	return true
}

// GameRef is a view of a Game table.
type GameRef struct {
	_tab flatbuffers.Table
}

// Result returns the game's outcome; absent reads as ResultUnknown.
func (rcv *GameRef) Result() GameResult {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(gameSlotResult)))
	if o != 0 {
		return GameResult(rcv._tab.GetInt8(o + rcv._tab.Pos))
	}
	return ResultUnknown
}

// StartPosition returns the game's FEN start position, or "" for the
// standard initial position.
func (rcv *GameRef) StartPosition() string {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(gameSlotStartPosition)))
	if o != 0 {
		return string(rcv._tab.ByteVector(o + rcv._tab.Pos))
	}
	return ""
}

// MovesLength returns the number of moves in the game.
func (rcv *GameRef) MovesLength() int {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(gameSlotMoves)))
	if o != 0 {
		return rcv._tab.VectorLen(o)
	}
	return 0
}

// Moves positions obj at the j-th move reference.
func (rcv *GameRef) Moves(obj *MoveRef, j int) bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(gameSlotMoves)))
	if o == 0 {
		return false
	}
	x := rcv._tab.Vector(o)
	x += flatbuffers.UOffsetT(j) * flatbuffers.SizeUOffsetT
	obj._tab.Bytes = rcv._tab.Bytes
	obj._tab.Pos = rcv._tab.Indirect(x)
	return true
}

// MoveRef is a view of a Move table.
type MoveRef struct {
	_tab flatbuffers.Table
}

// Pos returns the table's position within the block buffer. Two references
// to the same deduplicated move share one position.
func (rcv *MoveRef) Pos() flatbuffers.UOffsetT {
	return rcv._tab.Pos
}

func (rcv *MoveRef) int8Field(slot int, none int8) int8 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(slot)))
	if o != 0 {
		return rcv._tab.GetInt8(o + rcv._tab.Pos)
	}
	return none
}

// MovedPiece returns the moving piece kind.
func (rcv *MoveRef) MovedPiece() Piece {
	return Piece(rcv.int8Field(moveSlotMovedPiece, int8(PieceNone)))
}

// To returns the destination square (SquareNone for castling moves).
func (rcv *MoveRef) To() Square {
	return Square(rcv.int8Field(moveSlotTo, int8(SquareNone)))
}

// IsCapture reports whether the move captures.
func (rcv *MoveRef) IsCapture() bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(moveSlotIsCapture)))
	if o != 0 {
		return rcv._tab.GetBool(o + rcv._tab.Pos)
	}
	return false
}

// PromotedPiece returns the promotion piece, or PieceNone.
func (rcv *MoveRef) PromotedPiece() Piece {
	return Piece(rcv.int8Field(moveSlotPromotedPiece, int8(PieceNone)))
}

// Castle returns the castling side, or CastleNone.
func (rcv *MoveRef) Castle() CastleKind {
	return CastleKind(rcv.int8Field(moveSlotCastle, int8(CastleNone)))
}

// FromFile returns the file disambiguation hint, or FileNone.
func (rcv *MoveRef) FromFile() File {
	return File(rcv.int8Field(moveSlotFromFile, int8(FileNone)))
}

// FromRank returns the rank disambiguation hint, or RankNone.
func (rcv *MoveRef) FromRank() Rank {
	return Rank(rcv.int8Field(moveSlotFromRank, int8(RankNone)))
}

// From returns the exact origin square, or SquareNone when the move was
// encoded with hints only.
func (rcv *MoveRef) From() Square {
	return Square(rcv.int8Field(moveSlotFrom, int8(SquareNone)))
}

// IsCheck reports whether the move gives check. Only recorded alongside an
// exact origin square.
func (rcv *MoveRef) IsCheck() bool {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(fieldOff(moveSlotIsCheck)))
	if o != 0 {
		return rcv._tab.GetBool(o + rcv._tab.Pos)
	}
	return false
}

// Value reconstructs the Move value this table encodes.
func (rcv *MoveRef) Value() Move {
	return Move{
		MovedPiece:    rcv.MovedPiece(),
		To:            rcv.To(),
		IsCapture:     rcv.IsCapture(),
		PromotedPiece: rcv.PromotedPiece(),
		Castle:        rcv.Castle(),
		FromFile:      rcv.FromFile(),
		FromRank:      rcv.FromRank(),
		From:          rcv.From(),
		IsCheck:       rcv.IsCheck(),
	}
}
