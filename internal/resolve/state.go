package resolve

//go:generate go tool stringer -type=visitState -trimprefix=state -output=visitstate_string.go

// visitState tracks an entry through resolution.
type visitState int

const (
	stateUnvisited visitState = iota
	stateInProgress
	stateResolved
)
