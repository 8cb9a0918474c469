package utils

import (
	"github.com/aarondl/null/v8"
)

func NullIntPtr(ni null.Int) *int {
	if ni.Valid {
		return &ni.Int
	}
	return nil
}

func NullFloat64Ptr(nf null.Float64) *float64 {
	if nf.Valid {
		return &nf.Float64
	}
	return nil
}
