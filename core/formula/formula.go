// core/formula/formula.go
// Sum-formula parsing: "C7H5N3O6" → {C:7 H:5 N:3 O:6}.
//
// Grammar: (Symbol Digits?)*, Symbol = one uppercase letter plus optional
// lowercase letters, Digits = optional integer count (absent → 1).
// Repeated symbols accumulate. Anything else is skipped, not rejected.

package formula

import (
	"sort"
	"strconv"
	"strings"
)

// Counts maps an element symbol to its atom count per formula unit.
type Counts map[string]float64

// Get returns the count for sym, or 0 when absent.
func (c Counts) Get(sym string) float64 {
	if c == nil {
		return 0
	}
	return c[sym]
}

// Clone returns an independent copy.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Symbols returns the element symbols in alphabetical order.
func (c Counts) Symbols() []string {
	out := make([]string, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Parse scans s left to right and accumulates element counts.
func Parse(s string) Counts {
	out := Counts{}
	i := 0
	for i < len(s) {
		if !isUpper(s[i]) {
			i++
			continue
		}
		j := i + 1
		for j < len(s) && isLower(s[j]) {
			j++
		}
		sym := s[i:j]

		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		n := 1.0
		if k > j {
			// Digits only, so the sole failure is ErrRange, which yields +Inf.
			n, _ = strconv.ParseFloat(s[j:k], 64)
		}
		out[sym] += n
		i = k
	}
	return out
}

// Canonical renders c in Hill order: C first, H second, the rest
// alphabetically (plain alphabetical when there is no carbon).
// Parse(Canonical(c)) reproduces c for integral counts.
func Canonical(c Counts) string {
	var b strings.Builder
	write := func(sym string) {
		n := c[sym]
		b.WriteString(sym)
		if n != 1 {
			b.WriteString(strconv.FormatFloat(n, 'f', -1, 64))
		}
	}

	_, hasC := c["C"]
	if hasC {
		write("C")
		if _, ok := c["H"]; ok {
			write("H")
		}
	}
	for _, sym := range c.Symbols() {
		if hasC && (sym == "C" || sym == "H") {
			continue
		}
		write(sym)
	}
	return b.String()
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
