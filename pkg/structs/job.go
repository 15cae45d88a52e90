package structs

const (
	// FailureMessage is written to errorMessage when generation fails.
	FailureMessage = "Generation failed. Please try again."
)

type Job struct {
	ID     string `json:"id"`
	Status Status `json:"status"`

	Prompt string `json:"prompt"`
	Style  Style  `json:"style"`

	// ImageURL is set when a job is done, nil otherwise
	ImageURL *string `json:"imageUrl"`

	// ErrorMessage is set when a job has failed, nil otherwise
	ErrorMessage *string `json:"errorMessage"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// IsEmpty returns true if the snapshot carries no fields at all.
func (j *Job) IsEmpty() bool {
	if j == nil {
		return true
	}
	return j.Status == "" && j.Prompt == "" && j.Style == "" && j.ImageURL == nil && j.ErrorMessage == nil
}

// JobUpdate is a partial update to a job. The store sets UpdatedAt itself.
type JobUpdate struct {
	Status       Status
	ImageURL     *string
	ErrorMessage *string
}

// NewJobDone returns the update for a successful job.
func NewJobDone(url string) *JobUpdate {
	return &JobUpdate{Status: DONE, ImageURL: &url}
}

// NewJobFailed returns the update for a failed job.
func NewJobFailed() *JobUpdate {
	msg := FailureMessage
	return &JobUpdate{Status: FAILED, ErrorMessage: &msg}
}
