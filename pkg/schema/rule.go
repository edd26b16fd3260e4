package schema

// Rule is one threshold/comparison entry of a LIMS rule set. Every
// field is always present on the wire; nullable fields serialize as
// JSON null, never as an omitted key. The field order matches the
// historical export so diffs against existing payloads stay readable.
type Rule struct {
	Color           Color     `json:"color"`
	Column          *int64    `json:"column"`
	DDFTargetValue  *Value    `json:"DDF_target_value"`
	DDFType         DDFType   `json:"DDF_type"`
	DDFUnit         *string   `json:"DDF_unit"`
	Inverse         *int64    `json:"inverse"`
	Linker          *Linker   `json:"linker"`
	Operator        Operator  `json:"operator"`
	Operator2       *Operator `json:"operator2"`
	ParametertypeID *int64    `json:"parametertype_id"`
	RegexFilter     *string   `json:"regex_filter"`
	Show            *int64    `json:"show"`
	SpecID          *int64    `json:"spec_id"`
	Text            *string   `json:"text"`
	Translations    *string   `json:"translations"`
	Value           *Value    `json:"value"`
	Value2          *Value    `json:"value2"`
}

// ActionRule wraps a Rule in the action/data command envelope.
type ActionRule struct {
	Action string `json:"action"`
	Data   Rule   `json:"data"`
}

// RulesPayload is the top-level rules document. Insertion order is
// preserved on round-trip but carries no meaning beyond "as generated".
type RulesPayload struct {
	Rules []ActionRule `json:"rules"`
}

// Int64 returns a pointer to n. Convenience for the always-present
// integer fields (column, inverse, show, spec_id).
func Int64(n int64) *int64 { return &n }

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// OptStr returns nil for the empty string, otherwise a pointer to s.
// Matches the historical treatment of blank units.
func OptStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Op returns a pointer to o.
func Op(o Operator) *Operator { return &o }

// Link returns a pointer to l.
func Link(l Linker) *Linker { return &l }

// Val returns a pointer to v.
func Val(v Value) *Value { return &v }
