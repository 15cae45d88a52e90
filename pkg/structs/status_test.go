package structs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinalStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  Status
		Expect bool
	}{
		{"StatusUndefined", "x", false},
		{"StatusPending", PENDING, false},
		{"StatusProcessing", PROCESSING, false},
		{"StatusDone", DONE, true},
		{"StatusFailed", FAILED, true},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, IsFinalStatus(c.Given))
		})
	}
}

func TestToStatus(t *testing.T) {
	cases := []struct {
		Name   string
		Given  string
		Expect Status
	}{
		{"StatusUndefined", "x", ""},
		{"StatusEmpty", "", ""},
		{"StatusPending", "pending", PENDING},
		{"StatusIdle", "idle", PENDING},
		{"StatusProcessing", "processing", PROCESSING},
		{"StatusProcessingUpper", "PROCESSING", PROCESSING},
		{"StatusDone", "done", DONE},
		{"StatusFailed", " failed ", FAILED},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			assert.Equal(t, c.Expect, ToStatus(c.Given))
		})
	}
}
