// Package run tracks the publish state of a training run's checkpoints.
package run

import "time"

// Status is the mirroring status of one checkpoint directory.
type Status string

const (
	// StatusPending indicates that the checkpoint has been observed but not published.
	StatusPending Status = "pending"

	// StatusPublishing indicates that an upload is in progress.
	StatusPublishing Status = "publishing"

	// StatusPublished indicates that every file was mirrored to remote storage.
	StatusPublished Status = "published"

	// StatusFailed indicates that the publish attempt failed.
	StatusFailed Status = "failed"
)

// Instance represents one observed checkpoint directory.
type Instance struct {
	Dir         string     `json:"dir"`
	Step        int        `json:"step"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Files       int        `json:"files,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// NewInstance creates a new checkpoint instance.
func NewInstance(step int, dir string) *Instance {
	return &Instance{
		Dir:    dir,
		Step:   step,
		Status: StatusPending,
	}
}

// SetStatus sets the status of the instance.
func (i *Instance) SetStatus(status Status) {
	i.Status = status
	if status == StatusPublished {
		now := time.Now()
		i.PublishedAt = &now
	}
}

// SetError sets the error associated with the instance.
func (i *Instance) SetError(err error) {
	i.Error = err.Error()
}
