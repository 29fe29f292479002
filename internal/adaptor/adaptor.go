// Package adaptor implements the orchestration pass: filter candidate
// on-chain channels and plan a step for every channel with enough
// economic gain to be worth including. Building and submitting the
// transaction from that plan is left to the caller.
package adaptor

import (
	"context"
	"sort"
	"sync"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/ledger"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/step"
	"github.com/cardano-lightning/konduit-go/konduitlog"
)

// Orchestrator holds the adaptor's in-memory view of every keytag it
// services, mirroring htlcswitch.Switch's role as the single place that
// owns the live link/channel set (here: channel.Aggregate per keytag) and
// drives batched work across it.
type Orchestrator struct {
	mu sync.Mutex

	ledger  ledger.Ledger
	subVKey primitives.VerificationKey
	params  primitives.Params

	channels map[string]*channel.Aggregate // keyed by Keytag's map-comparable form

	minSingle primitives.Lovelace
	minTotal  primitives.Lovelace

	metrics *Metrics
}

// NewOrchestrator constructs an Orchestrator for a given adaptor
// sub_vkey and gain thresholds.
func NewOrchestrator(l ledger.Ledger, subVKey primitives.VerificationKey, params primitives.Params, minSingle, minTotal primitives.Lovelace) *Orchestrator {
	return &Orchestrator{
		ledger:    l,
		subVKey:   subVKey,
		params:    params,
		channels:  make(map[string]*channel.Aggregate),
		minSingle: minSingle,
		minTotal:  minTotal,
		metrics:   NewMetrics(),
	}
}

func keytagKey(kt channel.Keytag) string {
	return string(kt.Key[:]) + "\x00" + kt.Tag
}

// Aggregate returns the aggregate tracked for a keytag, creating an
// active one with no retainer/receipt yet if this is the first time the
// keytag is seen.
func (o *Orchestrator) Aggregate(key primitives.VerificationKey, tag primitives.Tag) *channel.Aggregate {
	o.mu.Lock()
	defer o.mu.Unlock()
	kt := channel.NewKeytag(key, tag)
	k := keytagKey(kt)
	a, ok := o.channels[k]
	if !ok {
		a = channel.NewAggregate(o.params, key, tag)
		o.channels[k] = a
	}
	return a
}

// candidatesByKeytag groups candidate UTxOs by the keytag their datum
// declares.
func candidatesByKeytag(utxos []channel.UTxO) map[string][]channel.L1Channel {
	out := make(map[string][]channel.L1Channel)
	for _, u := range utxos {
		k := keytagKey(u.Keytag())
		out[k] = append(out[k], u.L1Channel)
	}
	return out
}

// PlannedStep is one channel's contribution to an orchestration pass.
type PlannedStep struct {
	Keytag channel.Keytag
	Cont   step.Cont
	NewL1  channel.L1Channel
	Gain   primitives.Lovelace
}

// RunOnce performs a single orchestration pass: refresh retainers from
// the ledger, compute a step for every active channel with a receipt,
// drop those below minSingle, abort if the total is below minTotal, and
// return the plan for the caller to turn into a transaction and submit
// via Ledger.Submit. It does not itself call Submit — transaction
// assembly (fee computation, script execution) is left to the ledger
// connector.
func (o *Orchestrator) RunOnce(ctx context.Context, upperBound primitives.Duration) ([]PlannedStep, error) {
	utxos, err := o.ledger.ChannelUTxOs(ctx, o.subVKey)
	if err != nil {
		return nil, errs.Wrap(errs.Ledger, "fetching channel utxos", err)
	}
	byKeytag := candidatesByKeytag(utxos)

	o.mu.Lock()
	defer o.mu.Unlock()

	var plans []PlannedStep
	var total primitives.Lovelace

	keys := make([]string, 0, len(o.channels))
	for k := range o.channels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		agg := o.channels[k]
		if !agg.IsActive {
			continue
		}
		if candidates, ok := byKeytag[k]; ok {
			agg.UpdateRetainer(candidates)
		}
		if agg.Retainer == nil || agg.Receipt == nil {
			continue
		}

		cont, newL1, ok := step.Synthesize(upperBound, *agg.Receipt, *agg.Retainer)
		if !ok {
			continue
		}

		gain := gainOf(cont, *agg.Retainer, newL1)
		if gain < o.minSingle {
			o.metrics.StepsDropped.WithLabelValues("below_min_single").Inc()
			konduitlog.AdaptorLog.Debugf("dropping step for keytag, gain %d below min_single %d", gain, o.minSingle)
			continue
		}

		plans = append(plans, PlannedStep{Keytag: channel.Keytag{Key: agg.Key, Tag: string(agg.Tag)}, Cont: cont, NewL1: newL1, Gain: gain})
		total += gain
	}

	if total < o.minTotal {
		o.metrics.StepsDropped.WithLabelValues("below_min_total").Add(float64(len(plans)))
		konduitlog.AdaptorLog.Debugf("aborting orchestration pass, total gain %d below min_total %d", total, o.minTotal)
		return nil, nil
	}

	o.metrics.StepsSynthesized.Add(float64(len(plans)))
	o.metrics.GainLovelaceTotal.Add(float64(total))
	konduitlog.AdaptorLog.Infof("orchestration pass produced %d steps, total gain %d", len(plans), total)
	return plans, nil
}

// gainOf is the economic gain a step represents to the adaptor: the
// lovelace amount moving out of the channel UTxO's balance (sub-tracted,
// or claimed via a respond/unlock) toward the adaptor.
func gainOf(cont step.Cont, oldL1, newL1 channel.L1Channel) primitives.Lovelace {
	return oldL1.Amount.SaturatingSub(newL1.Amount)
}

// Commit records that a planned step was successfully submitted on
// chain, advancing the aggregate's retainer to the stepped state. The
// receipt itself needs no mutation here: a cheque that moved into the
// Opened stage's useds set stays on file in the receipt until the
// consumer's next squash actually covers it.
func (o *Orchestrator) Commit(plan PlannedStep) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	agg, ok := o.channels[keytagKey(plan.Keytag)]
	if !ok {
		return errs.New(errs.NoRetainer, "committing step for unknown keytag")
	}
	newL1 := plan.NewL1
	agg.Retainer = &newL1
	return nil
}
