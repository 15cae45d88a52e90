package common

const (
	// API_JOBS is used to create jobs
	API_JOBS = "/api/v1/jobs"

	// API_JOB is used to get a single job by id
	API_JOB = "/api/v1/jobs/{id}"

	// API_HEALTH writes a health document (firing the health probe)
	API_HEALTH = "/api/v1/health"

	// API_HEALTHZ is the liveness check of the API server itself
	API_HEALTHZ = "/healthz"
)
