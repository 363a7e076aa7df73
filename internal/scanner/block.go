package scanner

import (
	"fmt"
	"strconv"
	"strings"
)

const latestTag = "latest"

// BlockRef is a concrete block number or the chain head marker.
type BlockRef struct {
	Number uint64
	Latest bool
}

// Latest refers to the chain head at resolution time.
func Latest() BlockRef {
	return BlockRef{Latest: true}
}

// Block refers to a concrete block number.
func Block(number uint64) BlockRef {
	return BlockRef{Number: number}
}

// ParseBlockRef accepts "latest" or a non-negative decimal block number.
func ParseBlockRef(input string) (BlockRef, error) {
	input = strings.TrimSpace(input)
	if strings.EqualFold(input, latestTag) {
		return Latest(), nil
	}
	number, err := strconv.ParseUint(input, 10, 64)
	if err != nil {
		return BlockRef{}, fmt.Errorf("invalid block %q: want a block number or %q", input, latestTag)
	}
	return Block(number), nil
}

func (b BlockRef) String() string {
	if b.Latest {
		return latestTag
	}
	return strconv.FormatUint(b.Number, 10)
}
