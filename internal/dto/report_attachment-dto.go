package dto

type ReportAttachmentDTO struct {
	ID             string `json:"id"`
	ReportID       string `json:"report_id"`
	UploadedBy     string `json:"uploaded_by"`
	FilePath       string `json:"file_path"`
	FileName       string `json:"file_name"`
	FileType       string `json:"file_type"`
	AttachmentType string `json:"attachment_type"`
	FileSize       int64  `json:"file_size"`
	CreatedAt      string `json:"created_at"`
}
