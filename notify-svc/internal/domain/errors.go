package domain

import "errors"

var ErrUnknownType = errors.New("unknown notification type")
