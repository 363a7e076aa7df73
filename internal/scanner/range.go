package scanner

import "fmt"

// DefaultChunkThreshold is the range width below which a single log query is issued.
const DefaultChunkThreshold uint64 = 30

// BlockRange represents an inclusive block range.
type BlockRange struct {
	From uint64
	To   uint64
}

// SplitRange splits a block range into batches of size batchSize.
func SplitRange(from, to, batchSize uint64) ([]BlockRange, error) {
	if batchSize == 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block must be >= from block")
	}

	ranges := make([]BlockRange, 0)
	start := from
	for start <= to {
		remaining := to - start + 1
		var end uint64
		if remaining <= batchSize {
			end = to
		} else {
			end = start + batchSize - 1
		}
		ranges = append(ranges, BlockRange{From: start, To: end})
		if end == to {
			break
		}
		start = end + 1
	}

	return ranges, nil
}

// PlanChunks returns one range covering [from, to] when to-from < threshold,
// and one single-block range per block otherwise.
func PlanChunks(from, to, threshold uint64) ([]BlockRange, error) {
	if threshold == 0 {
		return nil, fmt.Errorf("chunk threshold must be greater than zero")
	}
	if to < from {
		return nil, fmt.Errorf("to block must be >= from block")
	}
	if to-from < threshold {
		return []BlockRange{{From: from, To: to}}, nil
	}
	return SplitRange(from, to, 1)
}
