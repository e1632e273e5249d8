// Package coerce converts host values to numbers, following the usual
// script-language rules: undefined is NaN, null and the empty string are 0,
// booleans are 0 or 1, and unparseable strings are NaN rather than an error.
// Objects are the one failure case — this module carries no ToPrimitive
// machinery, so converting an object raises a TypeError-kind failure.
package coerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/hack-pad/arraybuffer/rterror"
	"github.com/hack-pad/arraybuffer/value"
)

func ToNumber(v value.Value) (float64, error) {
	switch v.Type() {
	case value.TypeNumber:
		return v.Num(), nil
	case value.TypeUndefined:
		return math.NaN(), nil
	case value.TypeNull:
		return 0, nil
	case value.TypeBoolean:
		if v.Bool() {
			return 1, nil
		}
		return 0, nil
	case value.TypeString:
		return stringToNumber(v.Str()), nil
	default:
		return 0, rterror.New("cannot convert object to a number", rterror.Type)
	}
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if len(s) > 2 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		u, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return math.NaN()
		}
		return float64(u)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
