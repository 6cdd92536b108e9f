package picker

import (
	"fmt"
	"math/big"
)

// Strategy names a coin selection algorithm.
type Strategy uint8

const (
	// DeepFirst spends the oldest outputs first.
	DeepFirst Strategy = iota
	// OptimizeSize searches for the fewest inputs that avoid a change output.
	OptimizeSize
	// MergeOutputs spends every output of an address together.
	MergeOutputs
	// HighestFirstLimit spends the largest outputs first, at most MaxUtxos of them.
	HighestFirstLimit
	// LimitUtxo spends the oldest outputs first, at most MaxUtxos of them.
	LimitUtxo
)

var strategyNames = map[Strategy]string{
	DeepFirst:         "deep_first",
	OptimizeSize:      "optimize_size",
	MergeOutputs:      "merge_outputs",
	HighestFirstLimit: "highest_first_limit",
	LimitUtxo:         "limit_utxo",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// ParseStrategy is the inverse of Strategy.String.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidRequest, name)
}

// Request describes the transaction to fund.
type Request struct {
	// Amount sent to the recipients, excluding fees.
	Amount *big.Int
	// FeePerByte is the fee rate paid now.
	FeePerByte *big.Int
	// LongTermFeePerByte prices the future spend of a change output. Defaults to FeePerByte.
	LongTermFeePerByte *big.Int
	// Outputs is the number of recipient outputs. Defaults to 1.
	Outputs int
	// Dust is the smallest change worth an output. Smaller change goes to fees.
	Dust     *big.Int
	Strategy Strategy
	// MaxUtxos bounds the input count of the limit strategies.
	MaxUtxos int
	Sizes    SizeModel
}

func (r Request) normalize() (Request, error) {
	switch {
	case r.Amount == nil || r.Amount.Sign() <= 0:
		return r, fmt.Errorf("%w: amount must be positive", ErrInvalidRequest)
	case r.FeePerByte == nil || r.FeePerByte.Sign() < 0:
		return r, fmt.Errorf("%w: fee rate must not be negative", ErrInvalidRequest)
	case r.LongTermFeePerByte != nil && r.LongTermFeePerByte.Sign() < 0:
		return r, fmt.Errorf("%w: long term fee rate must not be negative", ErrInvalidRequest)
	case r.Dust != nil && r.Dust.Sign() < 0:
		return r, fmt.Errorf("%w: dust must not be negative", ErrInvalidRequest)
	case r.Outputs < 0:
		return r, fmt.Errorf("%w: negative output count", ErrInvalidRequest)
	case !r.Sizes.valid():
		return r, fmt.Errorf("%w: incomplete size model", ErrInvalidRequest)
	}
	if _, ok := strategyNames[r.Strategy]; !ok {
		return r, fmt.Errorf("%w: unknown strategy %d", ErrInvalidRequest, r.Strategy)
	}
	if (r.Strategy == HighestFirstLimit || r.Strategy == LimitUtxo) && r.MaxUtxos <= 0 {
		return r, fmt.Errorf("%w: %s needs a positive utxo limit", ErrInvalidRequest, r.Strategy)
	}

	if r.Outputs == 0 {
		r.Outputs = 1
	}
	if r.LongTermFeePerByte == nil {
		r.LongTermFeePerByte = r.FeePerByte
	}
	if r.Dust == nil {
		r.Dust = new(big.Int)
	}
	return r, nil
}

func (r Request) fee(size int) *big.Int {
	return new(big.Int).Mul(r.FeePerByte, big.NewInt(int64(size)))
}

// baseTarget is the amount plus the fee of a transaction without inputs or change.
func (r Request) baseTarget() *big.Int {
	return new(big.Int).Add(r.Amount, r.fee(r.Sizes.TxSize(0, r.Outputs)))
}

// costOfChange is the fee paid to create a change output now and to spend it later.
func (r Request) costOfChange() *big.Int {
	create := r.fee(r.Sizes.ChangeOutputSize)
	spend := new(big.Int).Mul(r.LongTermFeePerByte, big.NewInt(int64(r.Sizes.ChangeSpendSize)))
	return create.Add(create, spend)
}
