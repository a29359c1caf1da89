package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed request, rejected before any shard is touched.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrRecordNotFound signals a missing memory record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrVectorDimMismatch signals an embedding dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrShardTimeout signals that a single shard exceeded its search bound.
	ErrShardTimeout = errors.New("shard timeout")
	// ErrShardUnavailable signals a shard-side storage failure.
	ErrShardUnavailable = errors.New("shard unavailable")
)
