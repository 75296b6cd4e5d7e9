package utils

import "errors"

var (
	ErrTourNotFound   = errors.New("tour not found")
	ErrDatabaseError  = errors.New("database error")
	ErrUpstreamError  = errors.New("upstream api error")
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrParseFailure   = errors.New("parse failure")
	ErrNoArcticID     = errors.New("tour has no arctic id")
)
