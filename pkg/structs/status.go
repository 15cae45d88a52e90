package structs

import (
	"strings"
)

type Status string

const (
	// transient states
	PENDING    Status = "pending"
	PROCESSING Status = "processing"

	// end states
	DONE   Status = "done"
	FAILED Status = "failed"
)

// IsFinalStatus returns if the status is terminal; nothing moves a job out of these.
func IsFinalStatus(status Status) bool {
	switch status {
	case DONE, FAILED:
		return true
	default:
		return false
	}
}

func ToStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "idle":
		// "idle" is what clients call a job they haven't submitted yet
		return PENDING
	case "processing":
		return PROCESSING
	case "done":
		return DONE
	case "failed":
		return FAILED
	default:
		return ""
	}
}
