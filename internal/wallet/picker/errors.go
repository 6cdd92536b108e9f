package picker

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalidRequest reports a malformed selection request.
var ErrInvalidRequest = errors.New("invalid utxo pick request")

// InsufficientFundsError is returned when the candidates cannot cover the amount and fees.
type InsufficientFundsError struct {
	Shortfall *big.Int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: short by %s", e.Shortfall)
}

func insufficient(need, have *big.Int) error {
	return &InsufficientFundsError{Shortfall: new(big.Int).Sub(need, have)}
}
