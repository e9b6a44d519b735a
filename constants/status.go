package constants

// JobStatus is the canonical status for rows in scan_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued    JobStatus = "QUEUED"     // queued for processing
	JobStatusRunning   JobStatus = "RUNNING"    // in progress
	JobStatusExtractOK JobStatus = "EXTRACT_OK" // fields extracted from OCR text
	JobStatusFailed    JobStatus = "FAILED"     // terminal failure
)
