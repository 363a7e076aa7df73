package scanner

import (
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"

	"depositScanner/internal/deposit"
	"depositScanner/internal/model"
)

func buildRows(chain string, decoder *deposit.Decoder, logs []types.Log) ([]model.LogRow, error) {
	rows := make([]model.LogRow, 0, len(logs))
	for _, log := range logs {
		event, err := decoder.Decode(log)
		if err != nil {
			return nil, fmt.Errorf("tx %s log %d: %w", log.TxHash.Hex(), log.Index, err)
		}
		rows = append(rows, event.Row(chain))
	}
	return rows, nil
}
