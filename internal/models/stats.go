package models

// DomainStats holds completion counts for one annotation domain.
type DomainStats struct {
	Pending    int `json:"pending"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// Total returns the number of items in the domain.
func (s DomainStats) Total() int {
	return s.Pending + s.InProgress + s.Completed
}

// Add sums two stat sets field by field.
func (s DomainStats) Add(other DomainStats) DomainStats {
	return DomainStats{
		Pending:    s.Pending + other.Pending,
		InProgress: s.InProgress + other.InProgress,
		Completed:  s.Completed + other.Completed,
	}
}

// AnnotationStats aggregates the three annotation domains tracked by the
// dashboard.
type AnnotationStats struct {
	Segment       DomainStats `json:"segment"`
	Examination   DomainStats `json:"examination"`
	SensitiveMeta DomainStats `json:"sensitive_meta"`
}

// Combined sums all three domains.
func (s AnnotationStats) Combined() DomainStats {
	return s.Segment.Add(s.Examination).Add(s.SensitiveMeta)
}
