package fx

import "fmt"

// Stage is a lifecycle state.
type Stage int32

const (
	// Uninitialized processors have never been prepared and pass audio through.
	Uninitialized Stage = iota
	// Prepared processors have sized buffers but processed nothing yet.
	Prepared
	// Processing processors have run at least one sample since Prepare.
	Processing
)

// String implements fmt.Stringer.
func (s Stage) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Prepared:
		return "prepared"
	case Processing:
		return "processing"
	default:
		return fmt.Sprintf("Stage(%d)", int32(s))
	}
}
