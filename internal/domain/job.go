package domain

import "time"

// JobType enumerates queued generation job categories.
type JobType string

const (
	JobTypeVideoGenerate JobType = "video_generate"
)

// JobStatus enumerates job lifecycle states.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Job encapsulates the lifecycle of a queued video generation. PromptJSON is
// the serialized generation request; ResultJSON holds the asset metadata once
// the worker finishes.
type Job struct {
	ID           string
	UserID       string
	Type         JobType
	Status       JobStatus
	PromptJSON   []byte
	ResultJSON   []byte
	AspectRatio  string
	ErrorMessage string
	ErrorKind    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
