package service

import "errors"

// Domain errors. These are rejected immediately at the boundary and never
// retried; callers match them with errors.Is.
var (
	ErrPostNotFound          = errors.New("post not found")
	ErrNotPublished          = errors.New("post is not yet published")
	ErrPlatformNotConnected  = errors.New("platform not connected")
	ErrMissingPlatformPostID = errors.New("platform post id is missing")
	ErrUnknownPlatform       = errors.New("unknown platform")
	ErrScheduleLocked        = errors.New("scheduled time is immutable once published")
)
