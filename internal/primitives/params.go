package primitives

// Params bundles the configurable cardinality limits (maximum tag length,
// maximum exclude-set size, and maximum outstanding unsquashed cheques) a
// channel validator enforces. A channel and every cheque/squash it accepts
// are validated against one Params value shared by the whole adaptor
// instance.
type Params struct {
	MaxTagLength     int
	MaxExcludeLength int
	MaxUnsquashed    int
}

// DefaultParams returns the konduit reference limits: a 32-byte tag, a
// 64-entry exclude set, and 256 outstanding unsquashed cheques per channel.
func DefaultParams() Params {
	return Params{
		MaxTagLength:     32,
		MaxExcludeLength: 64,
		MaxUnsquashed:    256,
	}
}
