package wealthtrack

import (
	"encoding/json"
	"fmt"
)

// Kind classifies a holding as a listed share or a unit trust fund.
type Kind int

const (
	// Share is a directly listed stock position.
	Share Kind = iota
	// Fund is a unit trust position; only funds feed valuation snapshots.
	Fund
)

func (k Kind) String() string {
	switch k {
	case Share:
		return "share"
	case Fund:
		return "fund"
	default:
		return "unknown"
	}
}

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "share":
		return Share, nil
	case "fund":
		return Fund, nil
	default:
		return 0, fmt.Errorf("unknown holding kind: %q", s)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
