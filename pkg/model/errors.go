package model

import "github.com/m-mizutani/goerr/v2"

var (
	ErrUnknownTool   = goerr.New("unknown tool")
	ErrDuplicateTool = goerr.New("tool already registered")

	ErrInvalidParameter = goerr.New("invalid parameter")
	ErrInvalidRange     = goerr.New("invalid date range")
	ErrInvalidColumn    = goerr.New("column not allowed")

	ErrStoreUnavailable = goerr.New("record store unavailable")
	ErrIndexUnavailable = goerr.New("vector index unavailable")
)
