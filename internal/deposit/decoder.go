package deposit

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"depositScanner/internal/model"
)

// FieldNames maps the Deposit arguments to their names in the contract ABI.
type FieldNames struct {
	Token     string
	Recipient string
	Amount    string
}

// Decoder decodes Deposit logs using configured argument names.
type Decoder struct {
	event   abi.Event
	indexed abi.Arguments
	fields  FieldNames
}

// NewDecoder validates fields against the Deposit event of contractABI.
func NewDecoder(contractABI abi.ABI, fields FieldNames) (*Decoder, error) {
	event, ok := contractABI.Events[EventName]
	if !ok {
		return nil, fmt.Errorf("abi has no %s event", EventName)
	}

	if err := checkArgument(event, "token", fields.Token, abi.AddressTy, true); err != nil {
		return nil, err
	}
	if err := checkArgument(event, "recipient", fields.Recipient, abi.AddressTy, true); err != nil {
		return nil, err
	}
	if err := checkArgument(event, "amount", fields.Amount, abi.UintTy, false); err != nil {
		return nil, err
	}
	if fields.Token == fields.Recipient {
		return nil, fmt.Errorf("token and recipient fields both name %q", fields.Token)
	}

	return &Decoder{
		event:   event,
		indexed: indexedArguments(event.Inputs),
		fields:  fields,
	}, nil
}

// Topic0 returns the Deposit event signature hash.
func (d *Decoder) Topic0() common.Hash {
	return d.event.ID
}

// Decode converts a raw log into a DepositEvent.
func (d *Decoder) Decode(log types.Log) (model.DepositEvent, error) {
	if len(log.Topics) == 0 {
		return model.DepositEvent{}, fmt.Errorf("missing topics")
	}
	if log.Topics[0] != d.event.ID {
		return model.DepositEvent{}, fmt.Errorf("unexpected topic0: %s", log.Topics[0].Hex())
	}
	if len(log.Topics) != len(d.indexed)+1 {
		return model.DepositEvent{}, fmt.Errorf("expected %d topics, got %d", len(d.indexed)+1, len(log.Topics))
	}

	values := make(map[string]interface{}, len(d.event.Inputs))
	if err := abi.ParseTopicsIntoMap(values, d.indexed, log.Topics[1:]); err != nil {
		return model.DepositEvent{}, fmt.Errorf("parse topics: %w", err)
	}
	if err := d.event.Inputs.UnpackIntoMap(values, log.Data); err != nil {
		return model.DepositEvent{}, fmt.Errorf("unpack %s: %w", d.event.Name, err)
	}

	token, err := asAddress(values[d.fields.Token])
	if err != nil {
		return model.DepositEvent{}, fmt.Errorf("%s: %w", d.fields.Token, err)
	}
	recipient, err := asAddress(values[d.fields.Recipient])
	if err != nil {
		return model.DepositEvent{}, fmt.Errorf("%s: %w", d.fields.Recipient, err)
	}
	amount, err := asBigInt(values[d.fields.Amount])
	if err != nil {
		return model.DepositEvent{}, fmt.Errorf("%s: %w", d.fields.Amount, err)
	}

	return model.DepositEvent{
		Token:       token,
		Recipient:   recipient,
		Amount:      amount,
		TxHash:      log.TxHash,
		Address:     log.Address,
		BlockNumber: log.BlockNumber,
		LogIndex:    uint64(log.Index),
	}, nil
}

func checkArgument(event abi.Event, role, name string, typ byte, indexed bool) error {
	if name == "" {
		return fmt.Errorf("%s field name is required", role)
	}
	for _, arg := range event.Inputs {
		if arg.Name != name {
			continue
		}
		if arg.Type.T != typ {
			return fmt.Errorf("%s field %q has type %s", role, name, arg.Type.String())
		}
		if arg.Indexed != indexed {
			return fmt.Errorf("%s field %q indexed=%t, want %t", role, name, arg.Indexed, indexed)
		}
		return nil
	}
	return fmt.Errorf("%s event has no argument %q", event.Name, name)
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
