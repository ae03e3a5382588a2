package storage

// Op is a filter comparison operator.
type Op string

const (
	OpEq      Op = "eq"
	OpNeq     Op = "neq"
	OpGt      Op = "gt"
	OpGte     Op = "gte"
	OpLt      Op = "lt"
	OpLte     Op = "lte"
	OpLike    Op = "like"
	OpIn      Op = "in"
	OpIsNull  Op = "is_null"
	OpNotNull Op = "not_null"
	OpOr      Op = "or"
)

// Filter is one predicate on a column. Filters in a slice are ANDed; an
// OpOr filter ORs its Any members instead and ignores Column and Value.
type Filter struct {
	Column string
	Op     Op
	Value  any
	Any    []Filter
}

func Eq(column string, value any) Filter  { return Filter{Column: column, Op: OpEq, Value: value} }
func Neq(column string, value any) Filter { return Filter{Column: column, Op: OpNeq, Value: value} }
func Gt(column string, value any) Filter  { return Filter{Column: column, Op: OpGt, Value: value} }
func Gte(column string, value any) Filter { return Filter{Column: column, Op: OpGte, Value: value} }
func Lt(column string, value any) Filter  { return Filter{Column: column, Op: OpLt, Value: value} }
func Lte(column string, value any) Filter { return Filter{Column: column, Op: OpLte, Value: value} }

// Like matches rows whose column contains substr, ignoring case.
func Like(column, substr string) Filter { return Filter{Column: column, Op: OpLike, Value: substr} }

// In matches any of values. An empty list matches nothing.
func In(column string, values ...any) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

func IsNull(column string) Filter  { return Filter{Column: column, Op: OpIsNull} }
func NotNull(column string) Filter { return Filter{Column: column, Op: OpNotNull} }

// Or matches rows satisfying at least one of filters.
func Or(filters ...Filter) Filter { return Filter{Op: OpOr, Any: filters} }

// Sort orders query results by a column.
type Sort struct {
	Column string
	Desc   bool
}

func Asc(column string) Sort  { return Sort{Column: column} }
func Desc(column string) Sort { return Sort{Column: column, Desc: true} }

// Query selects rows from a table. A zero Limit means no limit.
type Query struct {
	Filters []Filter
	Sort    []Sort
	Limit   int
	Offset  int
}
