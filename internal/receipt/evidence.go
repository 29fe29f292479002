package receipt

import (
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/squash"
)

// Evidence is the minimal signed bundle a Sub/Respond on-chain step needs
// to prove it is authorized: the receipt's current squash plus the
// specific unlocked cheques being claimed. Modeled on the konduit
// original's evidence.rs (see SPEC_FULL.md §5). step.Cont carries its own
// Squash/Unlockeds fields and does not use this type.
type Evidence struct {
	Squash    squash.Squash
	Unlockeds []cheque.Unlocked
}

// BuildEvidence assembles the Evidence a step synthesized against r would
// need to carry on-chain: the receipt's squash plus every unlocked cheque
// currently on file.
func BuildEvidence(r Receipt) Evidence {
	return Evidence{Squash: r.Squash, Unlockeds: r.Unlockeds()}
}
