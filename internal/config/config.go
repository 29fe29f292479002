// Package config implements konduitd's daemon configuration, grounded on
// lnd.go's loadConfig: a jessevdk/go-flags struct parsed from the command
// line and an optional config file, defaults filled in before parsing.
package config

import (
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

const (
	defaultConfigFilename = "konduitd.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultHTTPListen     = "localhost:8080"
	defaultMaxTagLength   = 32
	defaultMaxExclude     = 64
	defaultMaxUnsquashed  = 256
	defaultMinSingle      = 1_000
	defaultMinTotal       = 5_000
)

// Config is konduitd's full daemon configuration.
type Config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"d" long:"datadir" description:"Directory to store the channel database"`
	LogLevel   string `long:"loglevel" description:"Logging level for all subsystems"`

	HTTPListen string `long:"httplisten" description:"Host:port the HTTP surface listens on"`

	MaxTagLength  int `long:"maxtaglength" description:"Maximum tag length in bytes"`
	MaxExclude    int `long:"maxexclude" description:"Maximum exclude-set cardinality in a squash body"`
	MaxUnsquashed int `long:"maxunsquashed" description:"Maximum unsquashed cheque count per receipt"`

	MinSingle uint64 `long:"minsingle" description:"Minimum economic gain (lovelace) to include a single channel's step in an orchestration pass"`
	MinTotal  uint64 `long:"mintotal" description:"Minimum aggregate economic gain (lovelace) to submit an orchestration transaction"`

	FlatFeeLovelace uint64 `long:"flatfee" description:"Flat fee, in lovelace, advertised in /info"`

	SubVKeyHex string `long:"subvkey" description:"Hex-encoded verification key the adaptor subtracts with"`
}

// defaultConfig returns a Config populated with the daemon's defaults,
// before flags or the config file are applied.
func defaultConfig() Config {
	return Config{
		DataDir:       defaultDataDirname,
		LogLevel:      defaultLogLevel,
		HTTPListen:    defaultHTTPListen,
		MaxTagLength:  defaultMaxTagLength,
		MaxExclude:    defaultMaxExclude,
		MaxUnsquashed: defaultMaxUnsquashed,
		MinSingle:     defaultMinSingle,
		MinTotal:      defaultMinTotal,
	}
}

// Load parses command-line flags (and, if present, a config file) into a
// Config, mirroring lnd.go's loadConfig two-pass approach: a first pass
// to discover -C/--configfile, then a full parse with file-supplied
// defaults layered under explicit flags.
func Load(args []string) (*Config, error) {
	preCfg := defaultConfig()
	preParser := flags.NewParser(&preCfg, flags.Default)
	if _, err := preParser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	cfg := preCfg
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = filepath.Join(cfg.DataDir, defaultConfigFilename)
	}
	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		fileParser := flags.NewParser(&cfg, flags.Default)
		if err := flags.NewIniParser(fileParser).ParseFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Params converts the configured cardinality limits into the core's
// primitives.Params value.
func (c *Config) Params() primitives.Params {
	return primitives.Params{
		MaxTagLength:     c.MaxTagLength,
		MaxExcludeLength: c.MaxExclude,
		MaxUnsquashed:    c.MaxUnsquashed,
	}
}
