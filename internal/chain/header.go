package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HeaderInfo is the subset of a block header read by HeaderInfo.
type HeaderInfo struct {
	Number     uint64
	Hash       common.Hash
	ParentHash common.Hash
	Time       uint64
	ExtraData  []byte
}

// rpcHeader decodes only the fields we need. Proof-of-authority chains
// (Clique, Parlia, Avalanche) return extra-data longer than 32 bytes and
// extra header fields, so the node's hash is taken as-is instead of being
// recomputed from a strictly decoded types.Header.
type rpcHeader struct {
	Number     *hexutil.Big   `json:"number"`
	Hash       common.Hash    `json:"hash"`
	ParentHash common.Hash    `json:"parentHash"`
	Time       hexutil.Uint64 `json:"timestamp"`
	Extra      hexutil.Bytes  `json:"extraData"`
}

// HeaderInfo fetches a header by number, or the latest header when number is nil.
func (c *Client) HeaderInfo(ctx context.Context, number *uint64) (HeaderInfo, error) {
	if err := c.wait(ctx); err != nil {
		return HeaderInfo{}, err
	}

	tag := "latest"
	if number != nil {
		tag = hexutil.EncodeUint64(*number)
	}

	var raw *rpcHeader
	if err := c.rpcClient.CallContext(ctx, &raw, "eth_getBlockByNumber", tag, false); err != nil {
		return HeaderInfo{}, err
	}
	if raw == nil {
		return HeaderInfo{}, ethereum.NotFound
	}
	if raw.Number == nil {
		return HeaderInfo{}, fmt.Errorf("header %s: missing number", tag)
	}

	return HeaderInfo{
		Number:     raw.Number.ToInt().Uint64(),
		Hash:       raw.Hash,
		ParentHash: raw.ParentHash,
		Time:       uint64(raw.Time),
		ExtraData:  raw.Extra,
	}, nil
}
