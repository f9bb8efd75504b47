package ir

import "errors"

var (
	ErrBadPath = errors.New("malformed path")
	ErrNoPath  = errors.New("path does not resolve")
)
