package rules

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"limsrules/internal/core"
	"limsrules/pkg/schema"
)

// FillInternalLabTemplate stamps a spec id and per-parameter targets
// into a template rules document. The template must hold an even
// number of rules ordered as perfect/not-OK pairs, one pair per
// parameter; targets must supply one value per pair. Both rules of a
// pair get the target as value and DDF_target_value.
func FillInternalLabTemplate(doc Document, specID int64, targets []decimal.Decimal) error {
	if err := schema.ValidateSpecID(specID); err != nil {
		return err
	}

	items, err := doc.Items()
	if err != nil {
		return err
	}
	if len(items)%2 != 0 {
		return &core.StructureError{Message: "template rules must come in perfect/not-OK pairs"}
	}

	pairCount := len(items) / 2
	if len(targets) != pairCount {
		return fmt.Errorf("number of targets (%d) does not match parameter count (%d); expected one target per pair of rules",
			len(targets), pairCount)
	}

	for i := 0; i < pairCount; i++ {
		target := targets[i].String()
		for _, item := range items[i*2 : i*2+2] {
			m, ok := item.(map[string]any)
			if !ok {
				return &core.StructureError{Message: fmt.Sprintf("template rule %d is not an object", i*2)}
			}
			data, ok := m["data"].(map[string]any)
			if !ok {
				data = map[string]any{}
				m["data"] = data
			}
			SetByPath(data, []string{"spec_id"}, jsonInt(specID))
			SetByPath(data, []string{"value"}, jsonNumber(target))
			SetByPath(data, []string{"DDF_target_value"}, jsonNumber(target))
		}
	}
	return nil
}

// ParseTargetList reads a bracketed comma-separated list of numbers,
// e.g. "[0.55, 2, 0.85, 90]". The brackets are optional.
func ParseTargetList(raw string) ([]decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var out []decimal.Decimal
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := decimal.NewFromString(part)
		if err != nil {
			return nil, fmt.Errorf("invalid target %q", part)
		}
		out = append(out, d)
	}
	return out, nil
}
