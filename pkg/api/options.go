package api

import (
	"time"

	"github.com/voidshard/logogen/pkg/structs"
)

const (
	defInvocationTimeout = 120 * time.Second
	defReconnectDelay    = 5 * time.Second
)

// OptionsClientDefault runs a service that doesn't listen for database changes.
// This is intended for serving the job API, without running the trigger.
func OptionsClientDefault() *structs.Options {
	return &structs.Options{
		InvocationTimeout: defInvocationTimeout,
		ReconnectDelay:    defReconnectDelay,
	}
}

// OptionsServerDefault runs a service that listens for database changes & runs the trigger
// for each created job.
func OptionsServerDefault() *structs.Options {
	return &structs.Options{
		EventRoutines:     4,
		InvocationTimeout: defInvocationTimeout,
		ReconnectDelay:    defReconnectDelay,
	}
}
