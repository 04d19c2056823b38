package grid

func peopleColumns() Columns {
	return Columns{
		{Field: "name", Header: "Name", Sortable: true, Filterable: true, Editable: true},
		{Field: "score", Header: "Score", Sortable: true, Filterable: true, Editable: true, Aggregate: AggregateSum},
		{Field: "rate", Header: "Rate", Sortable: true, Aggregate: AggregateAverage},
		{Field: "notes", Header: "Notes"},
	}
}

func peopleRows() []Row {
	return []Row{
		{ID: "1", Fields: map[string]any{"name": "Bob", "score": 10, "rate": 40.0, "notes": "remote"}},
		{ID: "2", Fields: map[string]any{"name": "Amy", "score": 10, "rate": 60.0, "notes": "onsite"}},
		{ID: "3", Fields: map[string]any{"name": "Cid", "score": 5, "rate": 50.0, "notes": nil}},
	}
}

func ids(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = DisplayString(r.Value("name"))
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
