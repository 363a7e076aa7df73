package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// DepositEvent is a decoded Deposit log.
type DepositEvent struct {
	Token       common.Address
	Recipient   common.Address
	Amount      *big.Int
	TxHash      common.Hash
	Address     common.Address
	BlockNumber uint64
	LogIndex    uint64
}

// Row normalizes the event into the persisted row for chain.
func (e DepositEvent) Row(chain string) LogRow {
	amount := "0"
	if e.Amount != nil {
		amount = e.Amount.String()
	}
	return LogRow{
		Chain:           chain,
		Token:           e.Token.Hex(),
		Recipient:       e.Recipient.Hex(),
		Amount:          amount,
		TransactionHash: e.TxHash.Hex(),
		Address:         e.Address.Hex(),
		BlockNumber:     e.BlockNumber,
		LogIndex:        e.LogIndex,
	}
}
