package model

import "errors"

// ErrInputUnavailable signals a missing input the pipeline degrades around.
var ErrInputUnavailable = errors.New("input unavailable")

// ErrInsufficientData signals a calibration pass with no usable samples.
var ErrInsufficientData = errors.New("insufficient calibration data")
