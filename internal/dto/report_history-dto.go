package dto

type ReportHistoryDTO struct {
	ID            string `json:"id"`
	ReportID      string `json:"report_id"`
	ChangedBy     string `json:"changed_by,omitempty"`
	ChangedByName string `json:"changed_by_name"`
	Action        string `json:"action"`
	ActionLabel   string `json:"action_label"`
	OldValue      string `json:"old_value,omitempty"`
	NewValue      string `json:"new_value,omitempty"`
	Comment       string `json:"comment,omitempty"`
	CreatedAt     string `json:"created_at"`
}
