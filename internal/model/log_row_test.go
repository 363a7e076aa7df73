package model

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestDepositEventRow(t *testing.T) {
	amount, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	event := DepositEvent{
		Token:       common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		Recipient:   common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
		Amount:      amount,
		TxHash:      common.HexToHash("0xABCDEF"),
		Address:     common.HexToAddress("0xcccccccccccccccccccccccccccccccccccccccc"),
		BlockNumber: 100,
		LogIndex:    3,
	}

	row := event.Row("bsc")
	require.Equal(t, "bsc", row.Chain)
	require.Equal(t, event.Token.Hex(), row.Token)
	require.Equal(t, event.Recipient.Hex(), row.Recipient)
	require.Equal(t, event.Address.Hex(), row.Address)
	require.Equal(t, "123456789012345678901234567890", row.Amount)
	require.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000abcdef", row.TransactionHash)
	require.Equal(t, uint64(100), row.BlockNumber)
	require.Equal(t, uint64(3), row.LogIndex)
}

func TestLogRowRecordOrder(t *testing.T) {
	row := LogRow{
		Chain:           "avax",
		Token:           "t",
		Recipient:       "r",
		Amount:          "1",
		TransactionHash: "h",
		Address:         "a",
		BlockNumber:     9,
	}

	require.Equal(t, []string{"avax", "t", "r", "1", "h", "a"}, row.Record())
	require.Len(t, Columns, len(row.Record()))
}

func TestDepositEventRowNilAmount(t *testing.T) {
	require.Equal(t, "0", DepositEvent{}.Row("avax").Amount)
}
