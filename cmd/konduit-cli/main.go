// konduit-cli is the operator/consumer control plane for konduitd,
// grounded on cmd/lncli's urfave/cli command layout: one cli.Command per
// REST call, a shared set of global flags, a getClient-style helper for
// building the request.
package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli"

	"github.com/cardano-lightning/konduit-go/internal/adaptor"
	"github.com/cardano-lightning/konduit-go/internal/ledger"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[konduit-cli] %v\n", err)
	os.Exit(1)
}

func printRespJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func adaptorRequest(ctx *cli.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case []byte:
		reader = bytes.NewReader(b)
		contentType = "application/cbor"
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
		contentType = "application/json"
	}
	req, err := http.NewRequest(method, ctx.GlobalString("rpcserver")+path, reader)
	if err != nil {
		return nil, err
	}
	if keytag := ctx.GlobalString("konduit"); keytag != "" {
		req.Header.Set("KONDUIT", keytag)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, string(raw), resp.StatusCode)
	}
	return raw, nil
}

var infoCommand = cli.Command{
	Name:  "info",
	Usage: "Fetch the adaptor's channel parameters and fee schedule.",
	Action: func(ctx *cli.Context) error {
		raw, err := adaptorRequest(ctx, http.MethodGet, "/info", nil)
		if err != nil {
			return err
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		printRespJSON(v)
		return nil
	},
}

var receiptCommand = cli.Command{
	Name:  "receipt",
	Usage: "Fetch the current receipt for the channel identified by --konduit.",
	Action: func(ctx *cli.Context) error {
		raw, err := adaptorRequest(ctx, http.MethodGet, "/ch/receipt", nil)
		if err != nil {
			return err
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		printRespJSON(v)
		return nil
	},
}

var quoteCommand = cli.Command{
	Name:      "quote",
	Usage:     "Request a quote for paying a bolt11 invoice.",
	ArgsUsage: "bolt11",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.ShowCommandHelp(ctx, "quote")
		}
		raw, err := adaptorRequest(ctx, http.MethodPost, "/ch/quote", map[string]string{"Bolt11": ctx.Args().Get(0)})
		if err != nil {
			return err
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		printRespJSON(v)
		return nil
	},
}

var squashCommand = cli.Command{
	Name:      "squash",
	Usage:     "Submit a CBOR-encoded squash read from a file and report the resulting status.",
	ArgsUsage: "squash-file",
	Action: func(ctx *cli.Context) error {
		if ctx.NArg() != 1 {
			return cli.ShowCommandHelp(ctx, "squash")
		}
		cbor, err := os.ReadFile(ctx.Args().Get(0))
		if err != nil {
			return err
		}
		raw, err := adaptorRequest(ctx, http.MethodPost, "/ch/squash", cbor)
		if err != nil {
			return err
		}
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		printRespJSON(v)
		return nil
	},
}

// hammerCommand drives internal/adaptor.Hammer entirely in-process, no
// HTTP or ledger connector involved: a development benchmark for the
// channel-acceptance path under synthetic load.
var hammerCommand = cli.Command{
	Name:  "hammer",
	Usage: "Run an in-process load test of the channel acceptance path.",
	Flags: []cli.Flag{
		cli.IntFlag{Name: "channels", Value: 10, Usage: "number of synthetic channels to drive"},
		cli.IntFlag{Name: "cheques", Value: 50, Usage: "cheques to push through each channel"},
		cli.Uint64Flag{Name: "cheque_amount", Value: 1_000, Usage: "lovelace per cheque"},
		cli.Uint64Flag{Name: "retainer_amount", Value: 10_000_000, Usage: "lovelace backing each synthetic retainer"},
	},
	Action: func(ctx *cli.Context) error {
		var adaptorKey primitives.VerificationKey
		pub, _, err := ed25519.GenerateKey(nil)
		if err != nil {
			return err
		}
		copy(adaptorKey[:], pub)

		o := adaptor.NewOrchestrator(
			ledger.Unconfigured{}, adaptorKey, primitives.DefaultParams(),
			0, 0,
		)
		cfg := adaptor.HammerConfig{
			Channels:       ctx.Int("channels"),
			ChequesPerChan: ctx.Int("cheques"),
			ChequeAmount:   primitives.Lovelace(ctx.Uint64("cheque_amount")),
			RetainerAmount: primitives.Lovelace(ctx.Uint64("retainer_amount")),
		}

		start := time.Now()
		result, err := adaptor.Hammer(o, cfg)
		elapsed := time.Since(start)
		if err != nil {
			return err
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"channels driven", "cheques accepted", "total gain (lovelace)", "elapsed"})
		t.AppendRow(table.Row{result.ChannelsDriven, result.ChequesAccepted, result.TotalGain, elapsed})
		t.Render()
		return nil
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "konduit-cli"
	app.Version = "0.1"
	app.Usage = "control plane for konduitd"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rpcserver",
			Value: "http://localhost:8080",
			Usage: "base URL of the konduitd HTTP surface",
		},
		cli.StringFlag{
			Name:  "konduit",
			Usage: "hex(verification_key || tag) identifying the channel to act on",
		},
	}
	app.Commands = []cli.Command{
		infoCommand,
		receiptCommand,
		quoteCommand,
		squashCommand,
		hammerCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
