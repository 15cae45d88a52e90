package core

import (
	"time"

	"github.com/voidshard/logogen/pkg/structs"
)

const (
	// fixed simulation constants
	minDelaySeconds = 30
	maxDelaySeconds = 60
	successRate     = 0.90

	// api limits
	maxPromptLength = 500

	// healthDocID is the document the api writes to poke the health probe
	healthDocID = "ping"

	// defaults
	defEventRoutines     = 4
	defInvocationTimeout = 120 * time.Second
	defReconnectDelay    = 5 * time.Second
)

func setDefaults(opts *structs.Options) *structs.Options {
	if opts == nil {
		opts = &structs.Options{EventRoutines: defEventRoutines}
	}
	if opts.InvocationTimeout <= 0 {
		opts.InvocationTimeout = defInvocationTimeout
	}
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = defReconnectDelay
	}
	return opts
}
