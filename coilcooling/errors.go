package coilcooling

import "errors"

var (
	ErrObjectNotFound       = errors.New("object not found")
	ErrDuplicateObject      = errors.New("duplicate object name")
	ErrInvalidCondenserType = errors.New("invalid condenser type")
	ErrNoSpeeds             = errors.New("operating mode has no speeds")
	ErrInvalidNominalSpeed  = errors.New("invalid nominal speed number")
	ErrInvalidInput         = errors.New("invalid input")
	ErrRatedConditions      = errors.New("rated conditions out of range")
	ErrSizing               = errors.New("sizing failed")
	ErrNotSized             = errors.New("operating mode not sized")
)
