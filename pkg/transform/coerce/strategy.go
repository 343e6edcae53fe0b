// Package coerce converts non-numeric columns into numeric or datetime
// columns. Each strategy is a prep.Transform over a single column.
package coerce

import (
	"fmt"

	"github.com/wdm0006/modelprep/pkg/prep"
)

// Strategy names a coercion as the operator chooses it.
type Strategy string

const (
	OneHot     Strategy = "get_dummies"
	ToNumeric  Strategy = "to_numeric"
	Mapping    Strategy = "mapping dictionary"
	ToDatetime Strategy = "to_datetime"
	Drop       Strategy = "drop column"
	// Skip leaves the column as it is.
	Skip Strategy = "skip"
)

// Strategies lists the choices offered per column, in display order.
var Strategies = []Strategy{OneHot, ToNumeric, Mapping, ToDatetime, Drop}

func ParseStrategy(s string) (Strategy, error) {
	if Strategy(s) == Skip {
		return Skip, nil
	}
	for _, st := range Strategies {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown coercion strategy %q", s)
}

// For returns the transform implementing s on column. Skip has no
// transform and returns nil.
func For(s Strategy, column string) (prep.Transform, error) {
	switch s {
	case OneHot:
		return &Dummies{Column: column}, nil
	case ToNumeric:
		return &Numeric{Column: column}, nil
	case Mapping:
		return &Categorical{Column: column}, nil
	case ToDatetime:
		return &Datetime{Column: column}, nil
	case Drop:
		return &DropColumn{Column: column}, nil
	case Skip:
		return nil, nil
	}
	return nil, prep.Invalid("coerce", column, "unknown strategy %q", s)
}
