package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// WinnerPosition is one of the five fixed ordinal ranks a winning
// submission can hold.
type WinnerPosition string

const (
	PositionFirst  WinnerPosition = "first"
	PositionSecond WinnerPosition = "second"
	PositionThird  WinnerPosition = "third"
	PositionFourth WinnerPosition = "fourth"
	PositionFifth  WinnerPosition = "fifth"
)

// WinnerPositions is the closed, ordered set of assignable ranks.
// Never more than five.
var WinnerPositions = [5]WinnerPosition{
	PositionFirst,
	PositionSecond,
	PositionThird,
	PositionFourth,
	PositionFifth,
}

// PositionsBeyond returns every rank past the first n, i.e. the positions
// that no longer exist once a listing keeps only n reward tiers.
func PositionsBeyond(n int) []WinnerPosition {
	if n < 0 {
		n = 0
	}
	if n >= len(WinnerPositions) {
		return nil
	}
	return WinnerPositions[n:]
}

// Rewards maps a winner position to its reward amount. Stored as a jsonb
// column on the listing.
type Rewards map[WinnerPosition]float64

func (r Rewards) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func (r *Rewards) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported rewards column type %T", value)
	}
}
