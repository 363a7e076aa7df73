package scanner

import (
	"sort"
	"strings"
)

// Supported chain identifiers.
const (
	ChainAvax = "avax"
	ChainBSC  = "bsc"
)

// Endpoints maps a chain identifier to its RPC URL.
type Endpoints map[string]string

// DefaultEndpoints returns the built-in testnet endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		ChainAvax: "https://api.avax-test.network/ext/bc/C/rpc",
		ChainBSC:  "https://data-seed-prebsc-1-s1.binance.org:8545/",
	}
}

// ResolveEndpoint returns the RPC URL for chain. Overrides in e replace the
// built-in URL but never add chains.
func (e Endpoints) ResolveEndpoint(chain string) (string, error) {
	defaults := DefaultEndpoints()
	url, ok := defaults[chain]
	if !ok {
		return "", &InvalidChainError{Chain: chain}
	}
	if override := strings.TrimSpace(e[chain]); override != "" {
		url = override
	}
	return url, nil
}

func supportedChainList() string {
	chains := make([]string, 0, 2)
	for chain := range DefaultEndpoints() {
		chains = append(chains, chain)
	}
	sort.Strings(chains)
	return strings.Join(chains, ", ")
}
