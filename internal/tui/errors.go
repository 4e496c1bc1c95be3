package tui

import "errors"

var (
	errNameLength = errors.New("name must be 2 to 100 characters")
	errInterval   = errors.New("enter a whole number of days, 1 or more")
)
