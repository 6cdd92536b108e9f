package utxocache

import (
	"math/big"
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-wallet/internal/wallet/model"
)

// Snapshot is an immutable view of the cache at a watermark height.
type Snapshot struct {
	Height uint64
	Utxos  []model.Utxo
}

// Balance sums the amounts of the snapshot.
func (s Snapshot) Balance() *big.Int {
	total := new(big.Int)
	for _, u := range s.Utxos {
		total.Add(total, u.Value.Amount)
	}
	return total
}

// Get looks a key up in the snapshot.
func (s Snapshot) Get(key model.UtxoKey) (model.UtxoValue, bool) {
	i := sort.Search(len(s.Utxos), func(i int) bool { return !s.Utxos[i].Key.Less(key) })
	if i < len(s.Utxos) && s.Utxos[i].Key == key {
		return s.Utxos[i].Value, true
	}
	return model.UtxoValue{}, false
}

// Keys returns the snapshot keys in order.
func (s Snapshot) Keys() []model.UtxoKey {
	keys := make([]model.UtxoKey, 0, len(s.Utxos))
	for _, u := range s.Utxos {
		keys = append(keys, u.Key)
	}
	return keys
}
