package resolve

import "errors"

var (
	ErrMissingKey         = errors.New("hocon: missing key")
	ErrSubstitutionCycle  = errors.New("hocon: substitution cycle")
	ErrIncompatibleConcat = errors.New("hocon: incompatible value concatenation")
)
