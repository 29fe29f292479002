// konduitd is the adaptor daemon: it owns the channel aggregates for one
// adaptor sub_vkey and serves the consumer-facing HTTP surface. Grounded
// on lnd.go's lndMain/main split, so deferred cleanup still runs on a
// graceful shutdown and os.Exit is only ever called from main itself.
//
// The BLN/ledger connectors are wired to ledger.Unconfigured/
// bln.Unconfigured: both are external collaborators outside this repo,
// so konduitd ships the daemon skeleton a concrete connector binary
// embeds, not a connector of its own (see DESIGN.md).
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/cardano-lightning/konduit-go/httpapi"
	"github.com/cardano-lightning/konduit-go/internal/adaptor"
	"github.com/cardano-lightning/konduit-go/internal/bln"
	"github.com/cardano-lightning/konduit-go/internal/config"
	"github.com/cardano-lightning/konduit-go/internal/ledger"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/store"
	"github.com/cardano-lightning/konduit-go/konduitlog"
)

func konduitdMain() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return err
	}
	konduitlog.SetLevel("", cfg.LogLevel)

	var subVKey primitives.VerificationKey
	if cfg.SubVKeyHex != "" {
		raw, err := hex.DecodeString(cfg.SubVKeyHex)
		if err != nil || len(raw) != len(subVKey) {
			return fmt.Errorf("invalid --subvkey: must be %d hex bytes", len(subVKey))
		}
		copy(subVKey[:], raw)
	}

	db, err := store.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("opening channel store: %w", err)
	}
	defer db.Close()

	orchestrator := adaptor.NewOrchestrator(
		ledger.Unconfigured{}, subVKey, cfg.Params(),
		primitives.Lovelace(cfg.MinSingle), primitives.Lovelace(cfg.MinTotal),
	)

	info := httpapi.Info{
		AdaptorKey:  subVKey,
		ClosePeriod: 0,
		TagLength:   cfg.MaxTagLength,
		FlatFee:     primitives.Lovelace(cfg.FlatFeeLovelace),
	}
	server := httpapi.NewServer(orchestrator, bln.Unconfigured{}, info, nowDuration)

	httpSrv := &http.Server{Addr: cfg.HTTPListen, Handler: server}
	go func() {
		konduitlog.HTTPLog.Infof("HTTP surface listening on %s", cfg.HTTPListen)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			konduitlog.HTTPLog.Errorf("HTTP server stopped: %v", err)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	konduitlog.AdaptorLog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func nowDuration() primitives.Duration {
	return primitives.Duration(time.Now().UnixMilli())
}

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := konduitdMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
