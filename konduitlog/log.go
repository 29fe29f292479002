// Package konduitlog wires up per-subsystem loggers the way lnd's own
// daemon does: a single backend writer and one btclog.Logger per subsystem
// created from it. The loggers are exported package variables that other
// packages use directly; there is no per-package UseLogger hook.
package konduitlog

import (
	"os"

	"github.com/btcsuite/btclog"
)

// Loggers per subsystem. A single backend logger is created and all
// subsystem loggers created from it write to the same backend. Adding a
// new subsystem means adding a variable here and to subsystemLoggers.
var (
	backendLog = btclog.NewBackend(os.Stdout)

	// AdaptorLog is internal/adaptor's subsystem logger.
	AdaptorLog = backendLog.Logger("ADPT")
	// ConsumerLog is internal/consumer's subsystem logger.
	ConsumerLog = backendLog.Logger("CNSM")
	// ChannelLog is internal/channel's subsystem logger.
	ChannelLog = backendLog.Logger("CHAN")
	// StoreLog is internal/store's subsystem logger.
	StoreLog = backendLog.Logger("STOR")
	// HTTPLog is httpapi's subsystem logger.
	HTTPLog = backendLog.Logger("HTTP")
	// BridgeLog is internal/bln's subsystem logger.
	BridgeLog = backendLog.Logger("BRDG")
)

var subsystemLoggers = map[string]btclog.Logger{
	"ADPT": AdaptorLog,
	"CNSM": ConsumerLog,
	"CHAN": ChannelLog,
	"STOR": StoreLog,
	"HTTP": HTTPLog,
	"BRDG": BridgeLog,
}

// SetLevel sets the log level for the named subsystem, or every subsystem
// when subsystem is "".
func SetLevel(subsystem, level string) {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return
	}
	if subsystem == "" {
		for _, logger := range subsystemLoggers {
			logger.SetLevel(lvl)
		}
		return
	}
	if logger, ok := subsystemLoggers[subsystem]; ok {
		logger.SetLevel(lvl)
	}
}
