package deposit

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// EventName is the name of the scanned event.
const EventName = "Deposit"

const depositABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "token", "type": "address"},
      {"indexed": true, "internalType": "address", "name": "recipient", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "Deposit",
    "type": "event"
  }
]`

var (
	depositABI     abi.ABI
	depositABIOnce sync.Once
	depositABIErr  error
)

// DefaultABI returns the parsed built-in Deposit ABI.
func DefaultABI() (abi.ABI, error) {
	depositABIOnce.Do(func() {
		depositABI, depositABIErr = abi.JSON(strings.NewReader(depositABIJSON))
	})
	return depositABI, depositABIErr
}

// LoadABI reads a contract ABI from a JSON file. An empty path yields the built-in ABI.
func LoadABI(path string) (abi.ABI, error) {
	if path == "" {
		return DefaultABI()
	}

	file, err := os.Open(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("open abi: %w", err)
	}
	defer file.Close()

	parsed, err := abi.JSON(file)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("parse abi %s: %w", path, err)
	}
	return parsed, nil
}
