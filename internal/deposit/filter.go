package deposit

import "github.com/ethereum/go-ethereum/common"

// Filter narrows a query by indexed argument values. Empty slices match anything.
type Filter struct {
	Tokens     []common.Address
	Recipients []common.Address
}

// Topics builds the topic filter for the Deposit event.
func (d *Decoder) Topics(filter Filter) [][]common.Hash {
	topics := [][]common.Hash{{d.event.ID}}
	if len(filter.Tokens) == 0 && len(filter.Recipients) == 0 {
		return topics
	}

	// Topic positions follow the order of indexed arguments in the ABI.
	for _, arg := range d.indexed {
		var addrs []common.Address
		switch arg.Name {
		case d.fields.Token:
			addrs = filter.Tokens
		case d.fields.Recipient:
			addrs = filter.Recipients
		}
		topics = append(topics, addressTopics(addrs))
	}

	for len(topics) > 1 && len(topics[len(topics)-1]) == 0 {
		topics = topics[:len(topics)-1]
	}
	return topics
}

func addressTopics(addrs []common.Address) []common.Hash {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]common.Hash, 0, len(addrs))
	for _, addr := range addrs {
		out = append(out, common.BytesToHash(addr.Bytes()))
	}
	return out
}
