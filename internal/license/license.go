// Package license maps short operator-facing license codes to SKU
// identifiers and applies assignments per record.
package license

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// builtin is the decision table for the common enterprise bundles. Config
// can add rows or shadow these; codes are matched case-insensitively.
var builtin = map[string]string{
	"E1": "18181a46-0d4e-45cd-891e-60aabd171b4e", // STANDARDPACK
	"E3": "6fd2c87f-b296-42f0-b197-1e91e994b900", // ENTERPRISEPACK
	"E5": "c7df2760-2c81-4ef7-b578-5b5392b571df", // ENTERPRISEPREMIUM
	"F3": "66b55226-6b4f-492c-910c-a3b7a3c9d993", // SPE_F1
}

// UnknownCodeError indicates a license code with no row in the decision
// table. Fatal, pre-flight: the run never starts with an unresolvable code.
type UnknownCodeError struct {
	Code  string
	Known []string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown license code %q (known: %s)", e.Code, strings.Join(e.Known, ", "))
}

// Resolve maps a license code to its SKU ID, consulting config overrides
// before the built-in table.
func Resolve(code string, overrides map[string]string) (uuid.UUID, error) {
	key := strings.ToUpper(strings.TrimSpace(code))

	raw, ok := "", false
	for oc, ov := range overrides {
		if strings.ToUpper(oc) == key {
			raw, ok = ov, true
			break
		}
	}
	if !ok {
		raw, ok = builtin[key]
	}
	if !ok {
		return uuid.Nil, &UnknownCodeError{Code: code, Known: knownCodes(overrides)}
	}

	sku, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("license code %s maps to malformed SKU ID %q: %w", key, raw, err)
	}
	return sku, nil
}

func knownCodes(overrides map[string]string) []string {
	seen := map[string]bool{}
	var codes []string
	for code := range builtin {
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	for code := range overrides {
		code = strings.ToUpper(code)
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}
