package input

import "errors"

// ErrInputRead is returned when the source file is missing or unreadable.
// The underlying OS error is wrapped alongside it.
var ErrInputRead = errors.New("failed to read input")

// ErrInputTooLarge is returned when the source exceeds the loader's size cap.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// ErrUnknownFormat is returned when a format name is not "auto", "text" or "html".
var ErrUnknownFormat = errors.New("unknown input format")
