package dto

type CreateReportCommentDTO struct {
	Comment  string `json:"comment" validate:"required,min=1,max=2000"`
	IsPublic *bool  `json:"is_public"`
}

type ReportCommentDTO struct {
	ID         string `json:"id"`
	ReportID   string `json:"report_id"`
	UserID     string `json:"user_id"`
	UserName   string `json:"user_name"`
	Comment    string `json:"comment"`
	IsPublic   bool   `json:"is_public"`
	IsInternal bool   `json:"is_internal"`
	CreatedAt  string `json:"created_at"`
}
