package cachepolicy

import "fmt"

type constError string

const (
	// ErrInvalidCapacity may be returned from constructors
	// when given a capacity below [MinimumCapacity].
	ErrInvalidCapacity = constError("invalid capacity")
	// ErrUnknownPolicy may be returned from [New] and [ParsePolicy].
	ErrUnknownPolicy = constError("unknown policy")
	// ErrInvalidOption may be returned from [NewLFU].
	ErrInvalidOption = constError("invalid option")
)

func (errStr constError) Error() string { return string(errStr) }

func checkCapacity(capacity int) error {
	if capacity >= MinimumCapacity {
		return nil
	}
	return fmt.Errorf(
		"%w: must be >=%d but %d was requested",
		ErrInvalidCapacity, MinimumCapacity, capacity)
}
