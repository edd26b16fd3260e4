package schema

// ActionCreate is the action tag the LIMS import expects on freshly
// generated entries. Mutation tools may overwrite it, so payload types
// treat the action as an opaque string.
const ActionCreate = "create"

// DDFType classifies the outcome band a rule describes.
type DDFType string

const (
	TypePerfect DDFType = "perfect"
	TypeOK      DDFType = "OK"
	TypeNotOK   DDFType = "not OK"
)

// Color is the severity color the LIMS renders for a band.
type Color string

const (
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// Color returns the color derived 1:1 from the band type.
func (t DDFType) Color() Color {
	switch t {
	case TypePerfect:
		return ColorGreen
	case TypeOK:
		return ColorOrange
	case TypeNotOK:
		return ColorRed
	}
	return ""
}

// Operator is a comparison symbol understood by the LIMS rule engine.
type Operator string

const (
	OpLessEqual    Operator = "<="
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpGreater      Operator = ">"
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
)

// Linker combines a rule's two comparison clauses.
type Linker string

const (
	LinkerAnd Linker = "AND"
	LinkerOr  Linker = "OR"
)

// DummyValue is the literal two-character sentinel the LIMS expects as
// the value of a dummy rule. It must serialize as the JSON string
// containing two quote characters, never as null or an empty string.
const DummyValue = `""`

// Deviation percent limits for nutrition-style deviation bands.
const (
	DeviationPercentMin = 0
	DeviationPercentMax = 50
)
