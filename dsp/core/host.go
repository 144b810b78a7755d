package core

// DefaultMaxBlockSize is the block size assumed until a host prepares a
// processor.
const DefaultMaxBlockSize = 512

// HostConfig is the sample rate and largest block a host prepares a
// processor with.
type HostConfig struct {
	SampleRate   float64
	MaxBlockSize int
}

// DefaultHostConfig returns the config in effect before Prepare.
func DefaultHostConfig() HostConfig {
	return HostConfig{SampleRate: DefaultSampleRate, MaxBlockSize: DefaultMaxBlockSize}
}

// NewHostConfig validates host settings. A sample rate that is not
// positive and finite falls back to DefaultSampleRate, a block size below
// one to DefaultMaxBlockSize.
func NewHostConfig(sampleRate float64, maxBlockSize int) HostConfig {
	if maxBlockSize < 1 {
		maxBlockSize = DefaultMaxBlockSize
	}

	return HostConfig{SampleRate: SafeSampleRate(sampleRate), MaxBlockSize: maxBlockSize}
}
