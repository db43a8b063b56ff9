package inappbrowser

import "errors"

var (
	ErrNilPage            = errors.New("inappbrowser: nil page")
	ErrAlreadyInitialized = errors.New("inappbrowser: page already initialized")
)
