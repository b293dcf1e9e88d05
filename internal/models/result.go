package models

import "time"

type SubmitStatus int

const (
	StatusAccepted SubmitStatus = iota
	StatusRejectedCooldown
	StatusRejectedQuota
	StatusRejectedInvalid
	StatusFailed
)

func (s SubmitStatus) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusRejectedCooldown:
		return "rejected_cooldown"
	case StatusRejectedQuota:
		return "rejected_quota"
	case StatusRejectedInvalid:
		return "rejected_invalid"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// SubmitResult is the typed outcome of one submission. Entry is set for
// Accepted and Failed (the event was counted but not logged), Wait for
// RejectedCooldown, Reason for RejectedInvalid and Err for Failed.
type SubmitResult struct {
	Status SubmitStatus
	Entry  Event
	Wait   time.Duration
	Reason error
	Err    error
}

func (r SubmitResult) Accepted() bool {
	return r.Status == StatusAccepted
}

// Limits are the admission parameters applied to every submission.
type Limits struct {
	Cooldown         time.Duration
	MaxMessageLength int
	MaxEventsPerDay  int
}
