package model

// Row is one rendered line of the form: either a single field or two
// adjacent half-width fields.
type Row struct {
	Fields []Field
}

// Paired reports whether the row holds two half-width fields.
func (r Row) Paired() bool {
	return len(r.Fields) == 2
}

// Rows scans fields left to right. Whenever the current and the next field
// are both half width they form a pair and the scan advances by two;
// otherwise the current field is a row of its own.
func Rows(fields []Field) []Row {
	rows := make([]Row, 0, len(fields))
	for i := 0; i < len(fields); {
		if i+1 < len(fields) && fields[i].Width == WidthHalf && fields[i+1].Width == WidthHalf {
			rows = append(rows, Row{Fields: []Field{fields[i].Clone(), fields[i+1].Clone()}})
			i += 2
			continue
		}
		rows = append(rows, Row{Fields: []Field{fields[i].Clone()}})
		i++
	}
	return rows
}
