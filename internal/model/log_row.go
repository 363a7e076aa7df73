package model

// Columns is the fixed header of the deposit log.
var Columns = []string{"chain", "token", "recipient", "amount", "transactionHash", "address"}

// LogRow is one persisted deposit.
type LogRow struct {
	Chain           string `json:"chain"`
	Token           string `json:"token"`
	Recipient       string `json:"recipient"`
	Amount          string `json:"amount"`
	TransactionHash string `json:"transactionHash"`
	Address         string `json:"address"`

	// Not part of the CSV layout.
	BlockNumber uint64 `json:"-"`
	LogIndex    uint64 `json:"-"`
}

// Record returns the row in Columns order.
func (r LogRow) Record() []string {
	return []string{r.Chain, r.Token, r.Recipient, r.Amount, r.TransactionHash, r.Address}
}
