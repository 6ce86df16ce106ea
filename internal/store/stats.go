package store

// Stats holds roster counts.
type Stats struct {
	Students int `json:"students"`
	Graded   int `json:"graded"` // students with at least one grade
	Grades   int `json:"grades"`
}

// Stats returns roster counts.
func (s *MemoryStore) Stats() Stats {
	st := Stats{Students: len(s.students)}
	for _, stu := range s.students {
		if stu.HasGrades() {
			st.Graded++
		}
		st.Grades += len(stu.Grades)
	}
	return st
}
