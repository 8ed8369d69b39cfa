package members

import (
	"fmt"
	"reflect"
	"strings"
)

// Field names a member attribute a predicate can constrain
type Field string

const (
	FieldID          Field = "id"
	FieldGender      Field = "gender"
	FieldOrientation Field = "orientation"
	FieldAge         Field = "age"
	FieldAgeRangeMin Field = "age_range_min"
	FieldAgeRangeMax Field = "age_range_max"
	FieldCity        Field = "city"
	FieldState       Field = "state"
	FieldReligion    Field = "religion"
	FieldEthnicity   Field = "ethnicity"
	FieldEducation   Field = "education"
	FieldHaveKids    Field = "have_kids"
)

// ageExpr reads the TEXT age column the same way Member.ParsedAge does
const ageExpr = `COALESCE(CASE WHEN btrim(m.age) ~ '^[0-9]{1,3}$' THEN btrim(m.age)::int END, 30)`

func (f Field) numeric() bool {
	switch f {
	case FieldID, FieldAge, FieldAgeRangeMin, FieldAgeRangeMax:
		return true
	}
	return false
}

// column is the SQL expression for f. Text columns compare trimmed and lower-cased.
func (f Field) column() (string, error) {
	switch f {
	case FieldID, FieldAgeRangeMin, FieldAgeRangeMax:
		return "m." + string(f), nil
	case FieldAge:
		return ageExpr, nil
	case FieldGender, FieldOrientation, FieldCity, FieldState, FieldReligion,
		FieldEthnicity, FieldEducation, FieldHaveKids:
		return "lower(btrim(m." + string(f) + "))", nil
	}
	return "", fmt.Errorf("unknown member field %q", f)
}

// value extracts f from m in the normalised form predicates compare against.
// ok is false when the column is NULL.
func (f Field) value(m *Member) (v interface{}, ok bool) {
	switch f {
	case FieldID:
		return m.ID, true
	case FieldAge:
		age, _ := m.ParsedAge()
		return int64(age), true
	case FieldAgeRangeMin:
		return intPtr(m.AgeRangeMin)
	case FieldAgeRangeMax:
		return intPtr(m.AgeRangeMax)
	}

	var s *string
	switch f {
	case FieldGender:
		s = m.Gender
	case FieldOrientation:
		s = m.Orientation
	case FieldCity:
		s = m.City
	case FieldState:
		s = m.State
	case FieldReligion:
		s = m.Religion
	case FieldEthnicity:
		s = m.Ethnicity
	case FieldEducation:
		s = m.Education
	case FieldHaveKids:
		s = m.HaveKids
	}
	if s == nil {
		return nil, false
	}
	return normalize(s), true
}

func intPtr(p *int) (interface{}, bool) {
	if p == nil {
		return nil, false
	}
	return int64(*p), true
}

// Operator is the comparison a predicate applies
type Operator string

const (
	OpEq      Operator = "eq"
	OpNeq     Operator = "neq"
	OpIn      Operator = "in"
	OpBetween Operator = "between"
	OpLte     Operator = "lte"
	OpGte     Operator = "gte"
	// OpNever matches nothing; it marks a combination with no valid candidates
	OpNever Operator = "never"
)

// Predicate is one typed condition on a member. Values are never spliced into SQL text.
type Predicate struct {
	Field  Field         `json:"field,omitempty"`
	Op     Operator      `json:"op"`
	Values []interface{} `json:"values,omitempty"`
	// NullOK makes a NULL column satisfy the predicate
	NullOK bool `json:"nullOk,omitempty"`
}

func normValue(f Field, v interface{}) interface{} {
	if f.numeric() {
		switch n := v.(type) {
		case int:
			return int64(n)
		case int32:
			return int64(n)
		case int64:
			return n
		}
		return v
	}
	// named string types such as Gender collapse to plain strings
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return strings.ToLower(strings.TrimSpace(rv.String()))
	}
	return v
}

func Eq(f Field, v interface{}) Predicate {
	return Predicate{Field: f, Op: OpEq, Values: []interface{}{normValue(f, v)}}
}

func NotEq(f Field, v interface{}) Predicate {
	return Predicate{Field: f, Op: OpNeq, Values: []interface{}{normValue(f, v)}}
}

func In(f Field, vs ...interface{}) Predicate {
	values := make([]interface{}, len(vs))
	for i, v := range vs {
		values[i] = normValue(f, v)
	}
	return Predicate{Field: f, Op: OpIn, Values: values}
}

// InStrings is In for a string slice
func InStrings(f Field, vs []string) Predicate {
	values := make([]interface{}, len(vs))
	for i, v := range vs {
		values[i] = v
	}
	return In(f, values...)
}

// Between is inclusive on both ends
func Between(f Field, lo, hi int) Predicate {
	return Predicate{Field: f, Op: OpBetween, Values: []interface{}{int64(lo), int64(hi)}}
}

func AtMost(f Field, v int) Predicate {
	return Predicate{Field: f, Op: OpLte, Values: []interface{}{int64(v)}}
}

func AtLeast(f Field, v int) Predicate {
	return Predicate{Field: f, Op: OpGte, Values: []interface{}{int64(v)}}
}

func Never() Predicate {
	return Predicate{Op: OpNever}
}

// OrNull returns a copy of p that NULL columns also satisfy
func (p Predicate) OrNull() Predicate {
	p.NullOK = true
	return p
}

// SQL renders p with ? placeholders. IN values are passed as one slice argument for sqlx.In.
func (p Predicate) SQL() (string, []interface{}, error) {
	if p.Op == OpNever {
		return "FALSE", nil, nil
	}

	col, err := p.Field.column()
	if err != nil {
		return "", nil, err
	}

	var clause string
	var args []interface{}
	switch p.Op {
	case OpEq, OpNeq, OpLte, OpGte:
		if len(p.Values) != 1 {
			return "", nil, fmt.Errorf("%s on %s needs one value, got %d", p.Op, p.Field, len(p.Values))
		}
		clause = fmt.Sprintf("%s %s ?", col, sqlOperators[p.Op])
		args = p.Values
	case OpIn:
		if len(p.Values) == 0 {
			return "FALSE", nil, nil
		}
		clause = col + " IN (?)"
		args = []interface{}{p.Values}
	case OpBetween:
		if len(p.Values) != 2 {
			return "", nil, fmt.Errorf("between on %s needs two values, got %d", p.Field, len(p.Values))
		}
		clause = col + " BETWEEN ? AND ?"
		args = p.Values
	default:
		return "", nil, fmt.Errorf("unknown operator %q", p.Op)
	}

	if p.NullOK {
		clause = fmt.Sprintf("(%s IS NULL OR %s)", col, clause)
	}
	return clause, args, nil
}

var sqlOperators = map[Operator]string{
	OpEq:  "=",
	OpNeq: "<>",
	OpLte: "<=",
	OpGte: ">=",
}

// Matches evaluates p against m with the same semantics as the rendered SQL:
// a NULL column fails every comparison unless NullOK is set.
func (p Predicate) Matches(m *Member) bool {
	if p.Op == OpNever {
		return false
	}

	v, ok := p.Field.value(m)
	if !ok {
		return p.NullOK
	}

	switch p.Op {
	case OpEq:
		return len(p.Values) == 1 && v == p.Values[0]
	case OpNeq:
		return len(p.Values) == 1 && v != p.Values[0]
	case OpIn:
		for _, want := range p.Values {
			if v == want {
				return true
			}
		}
		return false
	case OpBetween:
		n, isNum := v.(int64)
		lo, loOK := p.value(0)
		hi, hiOK := p.value(1)
		return isNum && loOK && hiOK && n >= lo && n <= hi
	case OpLte:
		n, isNum := v.(int64)
		bound, ok := p.value(0)
		return isNum && ok && n <= bound
	case OpGte:
		n, isNum := v.(int64)
		bound, ok := p.value(0)
		return isNum && ok && n >= bound
	}
	return false
}

func (p Predicate) value(i int) (int64, bool) {
	if i >= len(p.Values) {
		return 0, false
	}
	n, ok := p.Values[i].(int64)
	return n, ok
}

func (p Predicate) String() string {
	if p.Op == OpNever {
		return "never"
	}
	s := fmt.Sprintf("%s %s %v", p.Field, p.Op, p.Values)
	if p.NullOK {
		s += " or null"
	}
	return s
}

// Filter is a conjunction of predicates
type Filter []Predicate

// Where renders the filter as a WHERE body with ? placeholders.
// The result must go through sqlx.In and Rebind before execution.
func (f Filter) Where() (string, []interface{}, error) {
	if len(f) == 0 {
		return "TRUE", nil, nil
	}

	clauses := make([]string, 0, len(f))
	var args []interface{}
	for _, p := range f {
		clause, pArgs, err := p.SQL()
		if err != nil {
			return "", nil, err
		}
		clauses = append(clauses, clause)
		args = append(args, pArgs...)
	}
	return strings.Join(clauses, " AND "), args, nil
}

// Matches reports whether m satisfies every predicate
func (f Filter) Matches(m *Member) bool {
	for _, p := range f {
		if !p.Matches(m) {
			return false
		}
	}
	return true
}

// Has reports whether any predicate constrains field
func (f Filter) Has(field Field) bool {
	for _, p := range f {
		if p.Field == field {
			return true
		}
	}
	return false
}

func (f Filter) String() string {
	parts := make([]string, len(f))
	for i, p := range f {
		parts[i] = p.String()
	}
	return strings.Join(parts, " AND ")
}
