package cryptotracker

import "fmt"

// CoinInfo identifies a tradable asset. Immutable.
type CoinInfo struct {
	Tick string `json:"tick"`
	Name string `json:"name"`
}

// Coin holds one asset's full transaction history, in insertion order.
// A transaction belongs to exactly one coin; the ledger never removes
// individual transactions, only whole coins.
type Coin struct {
	Info         CoinInfo
	Transactions []*Transaction
}

// UnknownCoinError is returned when a tick has no entry in the registry.
type UnknownCoinError struct {
	Tick string
}

func (e *UnknownCoinError) Error() string {
	return fmt.Sprintf("coin %q is not a known asset", e.Tick)
}

// Registry is a read-only tick to CoinInfo lookup table, built once at
// process start and shared by reference.
type Registry struct {
	coins map[string]CoinInfo
}

// NewRegistry builds a registry from a list of coin infos. Later entries
// with the same tick override earlier ones.
func NewRegistry(infos ...CoinInfo) *Registry {
	coins := make(map[string]CoinInfo, len(infos))
	for _, info := range infos {
		coins[info.Tick] = info
	}
	return &Registry{coins: coins}
}

// Info resolves a tick, returning an UnknownCoinError for ticks outside
// the registry.
func (r *Registry) Info(tick string) (CoinInfo, error) {
	info, ok := r.coins[tick]
	if !ok {
		return CoinInfo{}, &UnknownCoinError{Tick: tick}
	}
	return info, nil
}

// Has reports whether the tick is known.
func (r *Registry) Has(tick string) bool {
	_, ok := r.coins[tick]
	return ok
}

// Alias makes a second tick resolve to an already registered coin. Used
// for exchange-specific variants such as Binance's locked staking "LD"
// tickers. It panics if the target tick is unknown, since aliases are
// wired at construction time.
func (r *Registry) Alias(alias, tick string) *Registry {
	info, ok := r.coins[tick]
	if !ok {
		panic("registry alias to unknown coin " + tick)
	}
	r.coins[alias] = info
	return r
}

// DefaultRegistry lists the assets with known market data. The locked
// staking variants (LD prefix on Binance) alias their spot asset.
func DefaultRegistry() *Registry {
	r := NewRegistry(
		CoinInfo{Tick: "ADA", Name: "Cardano"},
		CoinInfo{Tick: "ALGO", Name: "Algorand"},
		CoinInfo{Tick: "AUCTION", Name: "Bounce"},
		CoinInfo{Tick: "AXS", Name: "Axie Infinity"},
		CoinInfo{Tick: "BNB", Name: "Binance Coin"},
		CoinInfo{Tick: "BTC", Name: "Bitcoin"},
		CoinInfo{Tick: "BUSD", Name: "Binance USD"},
		CoinInfo{Tick: "DOGE", Name: "Dogecoin"},
		CoinInfo{Tick: "ENJ", Name: "Enjin Coin"},
		CoinInfo{Tick: "ETH", Name: "Ethereum"},
		CoinInfo{Tick: "EUR", Name: "Euro"},
		CoinInfo{Tick: "EZ", Name: "EasyFi"},
		CoinInfo{Tick: "FIL", Name: "Filecoin"},
		CoinInfo{Tick: "FTM", Name: "Fantom"},
		CoinInfo{Tick: "GRT", Name: "The Graph"},
		CoinInfo{Tick: "HOT", Name: "Holo"},
		CoinInfo{Tick: "INJ", Name: "Injective"},
		CoinInfo{Tick: "IOTX", Name: "IoTeX"},
		CoinInfo{Tick: "KLAY", Name: "Klaytn"},
		CoinInfo{Tick: "MATIC", Name: "Polygon"},
		CoinInfo{Tick: "OAX", Name: "openANX"},
		CoinInfo{Tick: "SHIB", Name: "Shiba Inu"},
		CoinInfo{Tick: "SOL", Name: "Solana"},
		CoinInfo{Tick: "USDT", Name: "Tether"},
		CoinInfo{Tick: "VET", Name: "VeChain"},
		CoinInfo{Tick: "VTHO", Name: "VeThor Token"},
		CoinInfo{Tick: "WIN", Name: "WINkLink"},
		CoinInfo{Tick: "XMR", Name: "Monero"},
	)
	return r.Alias("LDFTM", "FTM")
}
