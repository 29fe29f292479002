// Package step implements the on-chain step synthesizer: given a
// channel's current L1 stage and the adaptor's receipt, it produces the
// next valid (Cont, L1Channel) transition, mirroring the contract the
// on-chain validator itself enforces.
package step

import (
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/squash"
)

// ContKind discriminates the Cont sum type.
type ContKind int

const (
	ContAdd ContKind = iota
	ContSub
	ContClose
	ContRespond
	ContUnlock
	ContExpire
)

// Cont is a continuing on-chain channel transition: the redeemer payload
// for every step that keeps the channel alive (as opposed to Eol, which
// ends it). Only the fields relevant to Kind are meaningful, following the
// same discriminant-plus-payload idiom as channel.Stage.
type Cont struct {
	Kind ContKind

	// Sub, Respond
	Squash squash.Squash

	// Sub
	Unlockeds []cheque.Unlocked

	// Respond
	Cheques []cheque.Cheque

	// Unlock, Expire
	Unpends []Unpend
}
