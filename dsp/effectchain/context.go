package effectchain

// Context provides the host configuration that node runtimes are prepared
// with.
type Context struct {
	SampleRate   float64
	MaxBlockSize int
}
