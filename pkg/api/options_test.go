package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsClientDefault(t *testing.T) {
	opts := OptionsClientDefault()

	assert.Equal(t, int64(0), opts.EventRoutines)
	assert.Equal(t, defInvocationTimeout, opts.InvocationTimeout)
}

func TestOptionsServerDefault(t *testing.T) {
	opts := OptionsServerDefault()

	assert.Greater(t, opts.EventRoutines, int64(0))
	// the invocation timeout must outlast the longest simulated delay
	assert.Greater(t, opts.InvocationTimeout.Seconds(), float64(60))
}
