// Package exitcodes contains the constants representing possible storelocator exit error codes.
package exitcodes

// ExitCode is just a type representing a process exit code for storelocator.
type ExitCode uint8

// list of exit codes used by storelocator
const (
	GenericError      ExitCode = 1
	InvalidConfig     ExitCode = 104
	InvalidInput      ExitCode = 105
	CannotStartServer ExitCode = 106
	MapsAPIError      ExitCode = 107
	GoPanic           ExitCode = 109
)
