package domain

import "errors"

// domain invariant violations, never retried
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate")
	ErrUnsupportedProvider = errors.New("unsupported provider")
	ErrUnsupportedChannel  = errors.New("unsupported channel")
	ErrPageGone            = errors.New("page gone")
)
