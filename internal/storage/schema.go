package storage

import "fmt"

// ColumnKind controls how values are encoded for and decoded from the driver.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindFloat
	KindBool
	KindJSON
)

// Column describes one registered column.
type Column struct {
	Name string
	Kind ColumnKind
}

// Table describes a registered table. Columns are listed in select order.
type Table struct {
	Name    string
	Columns []Column
}

// Column looks up a column by name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

func (t Table) column(name string) (Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return Column{}, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, t.Name, name)
	}
	return c, nil
}

const (
	TableStudyPlans   = "study_plans"
	TablePlanDays     = "plan_days"
	TableExperiences  = "experiences"
	TableJobListings  = "job_listings"
	TableCareerEvents = "career_events"
)

func textCol(name string) Column { return Column{Name: name, Kind: KindText} }
func intCol(name string) Column { return Column{Name: name, Kind: KindInt} }
func floatCol(name string) Column { return Column{Name: name, Kind: KindFloat} }
func boolCol(name string) Column { return Column{Name: name, Kind: KindBool} }
func jsonCol(name string) Column { return Column{Name: name, Kind: KindJSON} }

var tables = map[string]Table{
	TableStudyPlans: {Name: TableStudyPlans, Columns: []Column{
		textCol("id"), textCol("title"), textCol("technology"), intCol("total_days"),
		floatCol("daily_hours"), textCol("explanation_level"), textCol("created_at"), textCol("deleted_at"),
	}},
	TablePlanDays: {Name: TablePlanDays, Columns: []Column{
		textCol("id"), textCol("plan_id"), intCol("day_number"), textCol("title"),
		jsonCol("concepts"), jsonCol("resources"), jsonCol("practice_questions"),
		floatCol("estimated_hours"), boolCol("is_completed"), textCol("completed_at"),
	}},
	TableExperiences: {Name: TableExperiences, Columns: []Column{
		textCol("id"), textCol("company"), textCol("role"), textCol("experience_date"), textCol("result"),
		textCol("difficulty"), textCol("summary"), textCol("author"), jsonCol("rounds"),
		textCol("created_at"), textCol("updated_at"),
	}},
	TableJobListings: {Name: TableJobListings, Columns: []Column{
		textCol("id"), textCol("company"), textCol("title"), textCol("location"), textCol("job_type"),
		textCol("experience_level"), textCol("description"), textCol("apply_url"), jsonCol("tags"),
		textCol("posted_at"), textCol("created_at"),
	}},
	TableCareerEvents: {Name: TableCareerEvents, Columns: []Column{
		textCol("id"), textCol("title"), textCol("description"), textCol("event_type"), textCol("location"),
		textCol("starts_at"), textCol("ends_at"), textCol("url"), textCol("created_at"),
	}},
}

// LookupTable returns the registered table or ErrUnknownTable.
func LookupTable(name string) (Table, error) {
	t, ok := tables[name]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return t, nil
}

// TableNames lists every registered table.
func TableNames() []string {
	return []string{TableStudyPlans, TablePlanDays, TableExperiences, TableJobListings, TableCareerEvents}
}
