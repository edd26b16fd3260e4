package repository

import (
	"encoding/json"
	"strconv"
	"strings"

	"limsrules/pkg/schema"
)

// BuildRulesExport turns merged rules CSV rows into the rules payload,
// applying the exporter's field typing: integer columns become ints,
// nullable columns map blank/"null" to null, and value becomes a
// number when it parses as one.
func BuildRulesExport(rows []Row) schema.RulesPayload {
	var payload schema.RulesPayload
	for _, row := range rows {
		r := schema.Rule{
			Color:           schema.Color(row["color"]),
			Column:          ToInt(row["column"]),
			DDFTargetValue:  valueFromString(NullIfBlankOrLiteralNull(row["DDF_target_value"])),
			DDFType:         schema.DDFType(row["DDF_type"]),
			DDFUnit:         NullIfBlankOrLiteralNull(row["DDF_unit"]),
			Inverse:         ToInt(row["inverse"]),
			Operator:        schema.Operator(row["operator"]),
			ParametertypeID: ToInt(row["parametertype_id"]),
			RegexFilter:     NullIfBlankOrLiteralNull(row["regex_filter"]),
			Show:            ToInt(row["show"]),
			SpecID:          ToInt(row["spec_id"]),
			Text:            NullIfBlankOrLiteralNull(row["text"]),
			Translations:    NullIfBlankOrLiteralNull(row["translations"]),
			Value:           anyValue(ToNumberOrKeep(row["value"])),
			Value2:          valueFromString(NullIfBlankOrLiteralNull(row["value2"])),
		}
		if s := NullIfBlankOrLiteralNull(row["linker"]); s != nil {
			l := schema.Linker(*s)
			r.Linker = &l
		}
		if s := NullIfBlankOrLiteralNull(row["operator2"]); s != nil {
			op := schema.Operator(*s)
			r.Operator2 = &op
		}
		payload.Rules = append(payload.Rules, schema.ActionRule{Action: schema.ActionCreate, Data: r})
	}
	return payload
}

// BuildSpecsExport turns merged specs CSV rows into the specs payload.
// Every spec gets the standard translations JSON string derived from
// its name.
func BuildSpecsExport(rows []Row) schema.SpecsPayload {
	var payload schema.SpecsPayload
	for _, row := range rows {
		name := row["name"]
		s := schema.Spec{
			Name:         name,
			Type:         ToInt(row["type"]),
			Status:       ToInt(row["status"]),
			Archiviert:   ToInt(row["archiviert"]),
			Order:        NullIfBlankOrLiteralNull(row["order"]),
			Translations: schema.Str(schema.EncodeSpecTranslations(name)),
		}
		payload.Specs = append(payload.Specs, schema.ActionSpec{Action: schema.ActionCreate, Data: s})
	}
	return payload
}

func valueFromString(s *string) *schema.Value {
	if s == nil {
		return nil
	}
	v := schema.StringValue(*s)
	return &v
}

func anyValue(v any) *schema.Value {
	switch x := v.(type) {
	case nil:
		return nil
	case json.Number:
		val := schema.NumberLiteral(x)
		return &val
	case string:
		val := schema.StringValue(x)
		return &val
	default:
		return nil
	}
}

// legacyRule mirrors the key order the older spreadsheet converter
// produced, which differs from the exporter's alphabetical layout.
type legacyRule struct {
	SpecID          *int64  `json:"spec_id"`
	Show            *int64  `json:"show"`
	Column          *int64  `json:"column"`
	Inverse         *int64  `json:"inverse"`
	ParametertypeID *int64  `json:"parametertype_id"`
	Value           any     `json:"value"`
	Value2          any     `json:"value2"`
	DDFUnit         *string `json:"DDF_unit"`
	DDFTargetValue  *string `json:"DDF_target_value"`
	DDFType         *string `json:"DDF_type"`
	Color           *string `json:"color"`
	Operator        *string `json:"operator"`
	Linker          *string `json:"linker"`
	Operator2       *string `json:"operator2"`
	RegexFilter     *string `json:"regex_filter"`
	Text            *string `json:"text"`
	Translations    *string `json:"translations"`
}

type legacyAction struct {
	Action string `json:"action"`
	Data   any    `json:"data"`
}

// ConvertRulesLegacy maps rules CSV rows in the older converter's
// format: strict integer parsing, value/value2 parsed as number where
// possible, everything else string-or-null.
func ConvertRulesLegacy(rows []Row) map[string]any {
	items := make([]any, 0, len(rows))
	for _, row := range rows {
		data := legacyRule{
			SpecID:          strictInt(row["spec_id"]),
			Show:            strictInt(row["show"]),
			Column:          strictInt(row["column"]),
			Inverse:         strictInt(row["inverse"]),
			ParametertypeID: strictInt(row["parametertype_id"]),
			Value:           smartParse(row["value"]),
			Value2:          smartParse(row["value2"]),
			DDFUnit:         stringOrNull(row["DDF_unit"]),
			DDFTargetValue:  stringOrNull(row["DDF_target_value"]),
			DDFType:         stringOrNull(row["DDF_type"]),
			Color:           stringOrNull(row["color"]),
			Operator:        stringOrNull(row["operator"]),
			Linker:          stringOrNull(row["linker"]),
			Operator2:       stringOrNull(row["operator2"]),
			RegexFilter:     stringOrNull(row["regex_filter"]),
			Text:            stringOrNull(row["text"]),
			Translations:    stringOrNull(row["translations"]),
		}
		items = append(items, legacyAction{Action: schema.ActionCreate, Data: data})
	}
	return map[string]any{"rules": items}
}

// legacySpec keeps the older converter's key order. The numeric fields
// fall back to the raw string when they do not parse as integers.
type legacySpec struct {
	Name         string `json:"name"`
	Type         any    `json:"type"`
	Status       any    `json:"status"`
	Archiviert   any    `json:"archiviert"`
	Order        any    `json:"order"`
	Translations any    `json:"translations"`
}

// ConvertSpecsLegacy maps specs CSV rows in the older converter's
// format, with translations hardcoded to null.
func ConvertSpecsLegacy(rows []Row) map[string]any {
	items := make([]any, 0, len(rows))
	for _, row := range rows {
		data := legacySpec{
			Name:       row["name"],
			Type:       intOrKeep(row["type"]),
			Status:     intOrKeep(row["status"]),
			Archiviert: intOrKeep(row["archiviert"]),
			Order:      intOrKeep(row["order"]),
		}
		items = append(items, legacyAction{Action: schema.ActionCreate, Data: data})
	}
	return map[string]any{"specs": items}
}

// legacyParam matches the parameter import layout with its nested
// english translations block.
type legacyParam struct {
	Name         string `json:"name"`
	GroupID      string `json:"group_id"`
	DDFDays      string `json:"DDF_days"`
	DDFPrice     string `json:"DDF_price"`
	Description  string `json:"description"`
	Einheit      string `json:"einheit"`
	DDFGBAID     string `json:"DDF_GBAID"`
	Translations struct {
		EN struct {
			Name    string `json:"name"`
			Einheit string `json:"einheit"`
		} `json:"en"`
	} `json:"translations"`
}

// ConvertParams maps parameter CSV rows to the parametertypes import
// payload, skipping rows already marked existing.
func ConvertParams(rows []Row) map[string]any {
	items := make([]any, 0, len(rows))
	for _, row := range rows {
		if strings.EqualFold(strings.TrimSpace(row["existing"]), "yes") {
			continue
		}
		var data legacyParam
		data.Name = row["name"]
		data.GroupID = row["group_id"]
		data.DDFDays = row["DDF_days"]
		data.DDFPrice = row["DDF_price"]
		data.Description = row["description"]
		data.Einheit = row["einheit"]
		data.DDFGBAID = row["DDF_GBAID"]
		data.Translations.EN.Name = row["translations_en_name"]
		data.Translations.EN.Einheit = row["translations_en_einheit"]
		items = append(items, legacyAction{Action: schema.ActionCreate, Data: data})
	}
	return map[string]any{"parametertypes": items}
}

// legacyTemplateField links a package template to one of its fields.
type legacyTemplateField struct {
	TemplateID string `json:"template_id"`
	Field      string `json:"field"`
}

// ConvertPackages maps package CSV rows to the templatefields import
// payload.
func ConvertPackages(rows []Row) map[string]any {
	items := make([]any, 0, len(rows))
	for _, row := range rows {
		data := legacyTemplateField{
			TemplateID: row["template_id"],
			Field:      row["field"],
		}
		items = append(items, legacyAction{Action: schema.ActionCreate, Data: data})
	}
	return map[string]any{"templatefields": items}
}

func strictInt(value string) *int64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// smartParse types a cell as int, then float, then string. Empty cells
// become nil.
func smartParse(value string) any {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return json.Number(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return s
}

func stringOrNull(value string) *string {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	return &s
}

// intOrKeep parses an integer, keeping the raw string when parsing
// fails. Empty cells become nil.
func intOrKeep(value string) any {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return json.Number(s)
	}
	return s
}
