package inspect

// Profile is a materialized data profile. Callers build it (or
// load it from a file) before rendering; lookups never block.
type Profile struct {
	Table   *TableStats            `json:"table,omitempty" yaml:"table,omitempty"`
	Columns map[string]ColumnStats `json:"columns,omitempty" yaml:"columns,omitempty"`
}

// NewProfile creates an empty Profile.
func NewProfile() *Profile {
	return &Profile{Columns: make(map[string]ColumnStats)}
}

// ColumnStats returns the statistics recorded for column.
func (p *Profile) ColumnStats(column string) (ColumnStats, bool) {
	if p == nil {
		return ColumnStats{}, false
	}
	s, ok := p.Columns[column]
	return s, ok
}

// ColumnType returns the recorded type of column, if any.
func (p *Profile) ColumnType(column string) (string, bool) {
	s, ok := p.ColumnStats(column)
	if !ok || s.Type == "" {
		return "", false
	}
	return s.Type, true
}

// TableStats returns the recorded table statistics, if any.
func (p *Profile) TableStats() (TableStats, bool) {
	if p == nil || p.Table == nil {
		return TableStats{}, false
	}
	return *p.Table, true
}
