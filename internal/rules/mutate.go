package rules

import (
	"encoding/json"
	"strconv"
	"strings"

	"limsrules/internal/core"
)

// Document is a decoded rules JSON file kept in generic form so that
// unknown keys and exact numeric literals survive a rewrite.
type Document map[string]any

// Items returns the top-level "rules" list, or an error when the
// document does not have one.
func (d Document) Items() ([]any, error) {
	items, ok := d["rules"].([]any)
	if !ok {
		return nil, &core.StructureError{Message: "input JSON must have a top-level 'rules' list"}
	}
	return items, nil
}

// MutateResult reports how many of the document's rules a mutation
// touched.
type MutateResult struct {
	Updated int
	Total   int
}

// UpdateSpecID sets data.spec_id on every rule. Rules without a data
// object are left alone and not counted.
func UpdateSpecID(doc Document, specID int64) (MutateResult, error) {
	items, err := doc.Items()
	if err != nil {
		return MutateResult{}, err
	}

	res := MutateResult{Total: len(items)}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		data, ok := m["data"].(map[string]any)
		if !ok {
			continue
		}
		data["spec_id"] = jsonInt(specID)
		res.Updated++
	}
	return res, nil
}

// UpdateOptions narrow which rules a key update touches.
type UpdateOptions struct {
	// OnlyMissing restricts the update to rules where the key is
	// currently absent, null, or a blank/"null" string.
	OnlyMissing bool
	// RestrictParamIDs, when non-empty, limits the update to rules
	// whose data.parametertype_id is in the set.
	RestrictParamIDs map[int64]struct{}
}

// UpdateUnit sets data.DDF_unit on matching rules. A nil unit clears
// the field to JSON null.
func UpdateUnit(doc Document, unit any, opts UpdateOptions) (MutateResult, error) {
	return UpdateKey(doc, []string{"data", "DDF_unit"}, unit, opts)
}

// UpdateKey sets an arbitrary dot-path on matching rules, creating
// intermediate objects as needed. Non-object rules are skipped.
func UpdateKey(doc Document, path []string, value any, opts UpdateOptions) (MutateResult, error) {
	items, err := doc.Items()
	if err != nil {
		return MutateResult{}, err
	}

	res := MutateResult{Total: len(items)}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if !paramIDMatches(m, opts.RestrictParamIDs) {
			continue
		}
		if opts.OnlyMissing && !isMissing(GetByPath(m, path)) {
			continue
		}
		SetByPath(m, path, value)
		res.Updated++
	}
	return res, nil
}

// RemoveResult reports the outcome of a parameter removal.
type RemoveResult struct {
	Removed int
	Total   int
}

// RemoveParams drops every rule whose data.parametertype_id is in ids.
// Malformed rules are kept.
func RemoveParams(doc Document, ids []int64) (RemoveResult, error) {
	items, err := doc.Items()
	if err != nil {
		return RemoveResult{}, err
	}

	idSet := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	kept := make([]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok && paramIDMatches(m, idSet) {
			continue
		}
		kept = append(kept, item)
	}
	doc["rules"] = kept

	return RemoveResult{Removed: len(items) - len(kept), Total: len(items)}, nil
}

// paramIDMatches reports whether the rule's data.parametertype_id is
// in the restriction set. An empty set matches everything; a rule that
// has no coercible id matches nothing.
func paramIDMatches(item map[string]any, ids map[int64]struct{}) bool {
	if len(ids) == 0 {
		return true
	}
	data, ok := item["data"].(map[string]any)
	if !ok {
		return false
	}
	pid, ok := coerceInt64(data["parametertype_id"])
	if !ok {
		return false
	}
	_, found := ids[pid]
	return found
}

func coerceInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, true
		}
		if f, err := x.Float64(); err == nil {
			return int64(f), true
		}
	case float64:
		return int64(x), true
	case int64:
		return x, true
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

func jsonInt(n int64) json.Number {
	return json.Number(strconv.FormatInt(n, 10))
}

func jsonNumber(literal string) json.Number {
	return json.Number(literal)
}

// isMissing treats nil, "", and any casing of "null" as absent.
func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	if !ok {
		return false
	}
	t := strings.ToLower(strings.TrimSpace(s))
	return t == "" || t == "null"
}
