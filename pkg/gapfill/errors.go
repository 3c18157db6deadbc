package gapfill

import (
	"errors"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrUnknownComponent = errors.New("unknown component")
)
