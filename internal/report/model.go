package report

import (
	"fmt"
	"strings"
)

// Output formats shared by both tools.
const (
	FormatTSV   = "tsv"
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// Model selects which reaction models a report carries.
type Model uint8

const (
	Detonation Model = 1 << iota
	Combustion

	Both = Detonation | Combustion
)

// ParseModel accepts detonation, combustion or both (case-insensitive).
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "detonation", "det":
		return Detonation, nil
	case "combustion", "comb":
		return Combustion, nil
	case "both", "":
		return Both, nil
	}
	return 0, fmt.Errorf("--model must be detonation, combustion or both (got %q)", s)
}

func (m Model) Has(x Model) bool { return m&x != 0 }

func (m Model) String() string {
	switch m {
	case Detonation:
		return "detonation"
	case Combustion:
		return "combustion"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Model(%d)", uint8(m))
}
