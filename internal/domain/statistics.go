package domain

// Statistics are counts over non-archived tasks.
type Statistics struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	ActiveTasks    int `json:"active_tasks"`
	OverdueTasks   int `json:"overdue_tasks"`
}

// CompletionRate is CompletedTasks/TotalTasks, or 0 for an empty set.
func (s Statistics) CompletionRate() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks)
}
