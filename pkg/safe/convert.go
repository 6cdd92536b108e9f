// Package safe converts between integer types, failing instead of wrapping around.
package safe

import "fmt"

// Integer is any built-in integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// RangeError reports a value that does not fit the target type.
type RangeError struct {
	Value  string
	Target string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("value %s out of %s range", e.Value, e.Target)
}

// Uint64 converts v to uint64, rejecting negative values.
func Uint64[T Integer](v T) (uint64, error) {
	return convert[uint64](v, "uint64")
}

// Int64 converts v to int64, rejecting unsigned values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	return convert[int64](v, "int64")
}

// convert accepts the conversion when it round-trips and keeps the sign.
func convert[R, T Integer](v T, target string) (R, error) {
	r := R(v)
	if T(r) != v || (v < 0) != (r < 0) {
		return 0, &RangeError{Value: fmt.Sprint(v), Target: target}
	}
	return r, nil
}
