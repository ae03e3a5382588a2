package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the differences between SQL backends that the builder cares about.
type Dialect struct {
	Name string
	// Placeholder renders the n-th (1-based) bind parameter.
	Placeholder func(n int) string
	// NativeBool is false for backends that store booleans as 0/1 integers.
	NativeBool bool
}

var (
	SQLiteDialect = Dialect{
		Name:        "sqlite",
		Placeholder: func(int) string { return "?" },
	}
	PostgresDialect = Dialect{
		Name:        "postgres",
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		NativeBool:  true,
	}
)

// statement accumulates SQL text and bind arguments.
type statement struct {
	d    Dialect
	sb   strings.Builder
	args []any
}

func (s *statement) write(parts ...string) {
	for _, p := range parts {
		s.sb.WriteString(p)
	}
}

func (s *statement) bind(v any) string {
	s.args = append(s.args, v)
	return s.d.Placeholder(len(s.args))
}

func (s *statement) String() string { return s.sb.String() }

// encode converts a Go value into the driver representation for column c.
func (d Dialect) encode(c Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch c.Kind {
	case KindJSON:
		switch val := v.(type) {
		case json.RawMessage:
			return string(val), nil
		case []byte:
			return string(val), nil
		case string:
			if !json.Valid([]byte(val)) {
				return nil, fmt.Errorf("%w: %s is not valid JSON", ErrInvalidFilterArg, c.Name)
			}
			return val, nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", c.Name, err)
		}
		return string(b), nil
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidFilterArg, c.Name, v)
		}
		if d.NativeBool {
			return b, nil
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	case KindText:
		if p, ok := v.(*string); ok {
			if p == nil {
				return nil, nil
			}
			return *p, nil
		}
	}
	return v, nil
}

// decode normalizes a scanned driver value for column c.
func decode(c Column, v any) any {
	if v == nil {
		return nil
	}
	switch c.Kind {
	case KindText:
		if b, ok := v.([]byte); ok {
			return string(b)
		}
	case KindInt:
		switch n := v.(type) {
		case int64:
			return n
		case float64:
			return int64(n)
		case []byte:
			i, _ := strconv.ParseInt(string(n), 10, 64)
			return i
		}
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n
		case int64:
			return float64(n)
		case []byte:
			f, _ := strconv.ParseFloat(string(n), 64)
			return f
		}
	case KindBool:
		switch b := v.(type) {
		case bool:
			return b
		case int64:
			return b != 0
		case []byte:
			parsed, _ := strconv.ParseBool(string(b))
			return parsed
		}
	case KindJSON:
		switch raw := v.(type) {
		case []byte:
			return json.RawMessage(append([]byte(nil), raw...))
		case string:
			return json.RawMessage(raw)
		}
	}
	return v
}

var comparisons = map[Op]string{
	OpEq:  "=",
	OpNeq: "<>",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *statement) where(t Table, filters []Filter) error {
	if len(filters) == 0 {
		return nil
	}
	s.write(" WHERE ")
	return s.conjunction(t, filters, " AND ")
}

func (s *statement) conjunction(t Table, filters []Filter, joiner string) error {
	for i, f := range filters {
		if i > 0 {
			s.write(joiner)
		}
		if err := s.predicate(t, f); err != nil {
			return err
		}
	}
	return nil
}

func (s *statement) predicate(t Table, f Filter) error {
	if f.Op == OpOr {
		if len(f.Any) == 0 {
			s.write("1=0")
			return nil
		}
		s.write("(")
		if err := s.conjunction(t, f.Any, " OR "); err != nil {
			return err
		}
		s.write(")")
		return nil
	}

	col, err := t.column(f.Column)
	if err != nil {
		return err
	}

	if sym, ok := comparisons[f.Op]; ok {
		v, err := s.d.encode(col, f.Value)
		if err != nil {
			return err
		}
		if v == nil {
			return fmt.Errorf("%w: %s %s nil, use IsNull", ErrInvalidFilterArg, col.Name, f.Op)
		}
		s.write(col.Name, " ", sym, " ", s.bind(v))
		return nil
	}

	switch f.Op {
	case OpLike:
		str, ok := f.Value.(string)
		if !ok {
			return fmt.Errorf("%w: like on %s expects a string", ErrInvalidFilterArg, col.Name)
		}
		pattern := "%" + escapeLike(strings.ToLower(str)) + "%"
		s.write("LOWER(CAST(", col.Name, " AS TEXT)) LIKE ", s.bind(pattern), ` ESCAPE '\'`)
	case OpIn:
		values, ok := f.Value.([]any)
		if !ok {
			return fmt.Errorf("%w: in on %s expects a list", ErrInvalidFilterArg, col.Name)
		}
		if len(values) == 0 {
			s.write("1=0")
			return nil
		}
		s.write(col.Name, " IN (")
		for i, raw := range values {
			v, err := s.d.encode(col, raw)
			if err != nil {
				return err
			}
			if i > 0 {
				s.write(", ")
			}
			s.write(s.bind(v))
		}
		s.write(")")
	case OpIsNull:
		s.write(col.Name, " IS NULL")
	case OpNotNull:
		s.write(col.Name, " IS NOT NULL")
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOp, f.Op)
	}
	return nil
}

// buildInsert renders an INSERT for rec with columns in registry order.
func (d Dialect) buildInsert(t Table, rec Record) (string, []any, error) {
	if err := checkColumns(t, rec); err != nil {
		return "", nil, err
	}
	s := &statement{d: d}
	var names, marks []string
	for _, c := range t.Columns {
		raw, ok := rec[c.Name]
		if !ok {
			continue
		}
		v, err := d.encode(c, raw)
		if err != nil {
			return "", nil, err
		}
		names = append(names, c.Name)
		marks = append(marks, s.bind(v))
	}
	s.write("INSERT INTO ", t.Name, " (", strings.Join(names, ", "), ") VALUES (", strings.Join(marks, ", "), ")")
	return s.String(), s.args, nil
}

// buildUpdate renders an UPDATE; an empty filter list is rejected.
func (d Dialect) buildUpdate(t Table, filters []Filter, changes Record) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, ErrUnfilteredWrite
	}
	if err := checkColumns(t, changes); err != nil {
		return "", nil, err
	}
	s := &statement{d: d}
	s.write("UPDATE ", t.Name, " SET ")
	first := true
	for _, c := range t.Columns {
		raw, ok := changes[c.Name]
		if !ok {
			continue
		}
		v, err := d.encode(c, raw)
		if err != nil {
			return "", nil, err
		}
		if !first {
			s.write(", ")
		}
		first = false
		s.write(c.Name, " = ", s.bind(v))
	}
	if err := s.where(t, filters); err != nil {
		return "", nil, err
	}
	return s.String(), s.args, nil
}

// buildDelete renders a DELETE; an empty filter list is rejected.
func (d Dialect) buildDelete(t Table, filters []Filter) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, ErrUnfilteredWrite
	}
	s := &statement{d: d}
	s.write("DELETE FROM ", t.Name)
	if err := s.where(t, filters); err != nil {
		return "", nil, err
	}
	return s.String(), s.args, nil
}

// buildSelect renders a SELECT of every registered column.
func (d Dialect) buildSelect(t Table, q Query) (string, []any, error) {
	s := &statement{d: d}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	s.write("SELECT ", strings.Join(names, ", "), " FROM ", t.Name)
	if err := s.where(t, q.Filters); err != nil {
		return "", nil, err
	}
	if len(q.Sort) > 0 {
		s.write(" ORDER BY ")
		for i, o := range q.Sort {
			if _, err := t.column(o.Column); err != nil {
				return "", nil, err
			}
			if i > 0 {
				s.write(", ")
			}
			s.write(o.Column)
			if o.Desc {
				s.write(" DESC")
			} else {
				s.write(" ASC")
			}
		}
	}
	if q.Limit > 0 {
		s.write(" LIMIT ", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		if q.Limit <= 0 && d.Name == SQLiteDialect.Name {
			// SQLite only accepts OFFSET after a LIMIT clause.
			s.write(" LIMIT -1")
		}
		s.write(" OFFSET ", strconv.Itoa(q.Offset))
	}
	return s.String(), s.args, nil
}

func checkColumns(t Table, rec Record) error {
	if len(rec) == 0 {
		return ErrEmptyRecord
	}
	for name := range rec {
		if _, err := t.column(name); err != nil {
			return err
		}
	}
	return nil
}
