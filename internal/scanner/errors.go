package scanner

import "fmt"

// InvalidChainError reports an unsupported chain identifier.
type InvalidChainError struct {
	Chain string
}

func (e *InvalidChainError) Error() string {
	return fmt.Sprintf("invalid chain %q: must be one of %s", e.Chain, supportedChainList())
}

// RangeError reports a resolved range whose end precedes its start.
type RangeError struct {
	Start uint64
	End   uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("end block (%d) < start block (%d)", e.End, e.Start)
}

// RPCError wraps a failure of the chain collaborator.
type RPCError struct {
	Op   string
	From uint64
	To   uint64
	Err  error
}

func (e *RPCError) Error() string {
	if e.From == 0 && e.To == 0 {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s [%d, %d]: %v", e.Op, e.From, e.To, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// IOError wraps a failure writing scanned rows.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write rows: %v", e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
