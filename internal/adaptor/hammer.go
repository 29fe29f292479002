package adaptor

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/squash"
	"github.com/cardano-lightning/konduit-go/konduitlog"
)

// HammerConfig parameterizes a load-testing run: how many synthetic
// channels to drive and how many cheques to push through each one.
type HammerConfig struct {
	Channels       int
	ChequesPerChan int
	ChequeAmount   primitives.Lovelace
	RetainerAmount primitives.Lovelace
}

// HammerResult summarizes one run. TotalGain is the summed amount of the
// accepted cheques.
type HammerResult struct {
	ChannelsDriven  int
	ChequesAccepted int
	TotalGain       primitives.Lovelace
}

// Hammer repeatedly opens a synthetic channel and appends up to
// cfg.ChequesPerChan locked cheques to it, purely in-memory against an
// Orchestrator — no ledger or BLN connector involved. It does not unlock,
// step or tear down the channels it opens. This is a
// development benchmarking tool, not part of the production
// orchestration path; it exists to exercise the same Orchestrator code a
// production run would under synthetic load.
func Hammer(o *Orchestrator, cfg HammerConfig) (HammerResult, error) {
	var result HammerResult

	for i := 0; i < cfg.Channels; i++ {
		pub, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return result, err
		}
		var sk primitives.SigningKey
		var vk primitives.VerificationKey
		copy(sk[:], priv)
		copy(vk[:], pub)
		tag := primitives.Tag(fmt.Sprintf("hammer-%d", i))

		agg := o.Aggregate(vk, tag)
		emptySquash, err := squash.Make(sk, tag, squash.Empty())
		if err != nil {
			return result, err
		}
		if _, err := agg.UpdateSquash(emptySquash); err != nil {
			return result, err
		}
		agg.UpdateRetainer([]channel.L1Channel{
			{Amount: cfg.RetainerAmount, Stage: channel.NewOpened(0, nil)},
		})

		for j := 0; j < cfg.ChequesPerChan; j++ {
			var lock primitives.Lock
			body := cheque.Body{Index: uint64(j + 1), Amount: cfg.ChequeAmount, Timeout: 1 << 40, Lock: lock}
			locked, err := cheque.MakeLocked(sk, tag, body)
			if err != nil {
				return result, err
			}
			if err := agg.AppendLocked(locked, 0); err != nil {
				konduitlog.AdaptorLog.Debugf("hammer: channel %d cheque %d rejected: %v", i, j, err)
				break
			}
			result.ChequesAccepted++
			result.TotalGain += cfg.ChequeAmount
		}
		result.ChannelsDriven++
	}

	konduitlog.AdaptorLog.Infof("hammer run complete: %d channels, %d cheques accepted", result.ChannelsDriven, result.ChequesAccepted)
	return result, nil
}
