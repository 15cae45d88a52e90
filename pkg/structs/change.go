package structs

// Change is a single write reported by a database change stream.
//
// ID is the document key. Job holds the job snapshot at the time of the write (for KindJob)
// and is nil if the store gave us no snapshot.
type Change struct {
	Kind Kind   `json:"kind"`
	Op   Op     `json:"op"`
	ID   string `json:"id"`

	Job    *Job    `json:"job,omitempty"`
	Health *Health `json:"health,omitempty"`
}
