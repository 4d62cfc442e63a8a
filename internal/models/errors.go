package models

import (
	"errors"
)

// Input errors. Their messages are shown to the user verbatim.
var (
	ErrEmptyURL        = errors.New("Please provide a URL")
	ErrUnsupportedURL  = errors.New("Unsupported URL format")
	ErrInvalidVideoURL = errors.New("Invalid video URL")
)

// Resolution and fetch errors
var (
	ErrChannelNotResolved = errors.New("Could not resolve channel")
	ErrChannelFetch       = errors.New("Could not fetch channel data")
	ErrVideoFetch         = errors.New("Could not fetch video data")
)

// Remote response errors
var (
	// ErrNoItems is returned by the platform client when a list call succeeds with zero items.
	ErrNoItems = errors.New("no items in response")
	// ErrMalformedResource marks a resource missing a section the analysis depends on.
	ErrMalformedResource = errors.New("malformed resource")
)
