package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobCanTransition(t *testing.T) {
	tests := []struct {
		from    JobStatus
		to      JobStatus
		allowed bool
	}{
		{JobStatusPending, JobStatusAssigned, true},
		{JobStatusPending, JobStatusCancelled, true},
		{JobStatusPending, JobStatusInTransit, false},
		{JobStatusPending, JobStatusDelivered, false},
		{JobStatusAssigned, JobStatusInTransit, true},
		{JobStatusAssigned, JobStatusCancelled, true},
		{JobStatusAssigned, JobStatusDelivered, false},
		{JobStatusAssigned, JobStatusPending, false},
		{JobStatusInTransit, JobStatusDelivered, true},
		{JobStatusInTransit, JobStatusCancelled, true},
		{JobStatusInTransit, JobStatusAssigned, false},
		{JobStatusDelivered, JobStatusPending, false},
		{JobStatusDelivered, JobStatusCancelled, false},
		{JobStatusCancelled, JobStatusAssigned, false},
	}

	for _, tt := range tests {
		job := &Job{Status: tt.from}
		assert.Equal(t, tt.allowed, job.CanTransition(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
