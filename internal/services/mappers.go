package services

import (
	"mime"
	"path/filepath"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"urbanreport/internal/dto"
	"urbanreport/internal/entities"
	"urbanreport/pkg/constants"
	"urbanreport/pkg/utils"
)

const timeLayout = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

func formatNullTime(nt null.Time) string {
	if !nt.Valid {
		return ""
	}
	return formatTime(nt.Time)
}

func nullString(ns null.String) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// toReportDTO projects the canonical row plus its category reference data.
// category may be nil when the caller has no lookup at hand.
func toReportDTO(r *entities.Report, category *entities.Category) *dto.ReportDTO {
	out := &dto.ReportDTO{
		ID:              r.ID.String(),
		TrackingCode:    r.TrackingCode,
		UserID:          r.UserID.String(),
		CategoryID:      r.CategoryID.String(),
		Title:           r.Title,
		Description:     r.Description,
		UrgencyLevel:    r.UrgencyLevel,
		UrgencyLabel:    constants.UrgencyLabels[r.UrgencyLevel],
		Status:          r.Status,
		StatusLabel:     constants.StatusLabel(r.Status),
		LocationAddress: r.LocationAddress,
		Lat:             utils.NullFloat64Ptr(r.Lat),
		Lon:             utils.NullFloat64Ptr(r.Lon),
		CitizenName:     r.CitizenName,
		CitizenEmail:    r.CitizenEmail,
		CitizenPhone:    nullString(r.CitizenPhone),
		PreferContact:   r.PreferContact,
		AdminNotes:      nullString(r.AdminNotes),
		ResolutionNotes: nullString(r.ResolutionNotes),
		RejectionReason: nullString(r.RejectionReason),
		AssignedUserID:  nullString(r.AssignedUserID),
		CitizenRating:   utils.NullIntPtr(r.CitizenRating),
		CitizenComment:  nullString(r.CitizenComment),
		CreatedAt:       formatTime(r.CreatedAt),
		UpdatedAt:       formatTime(r.UpdatedAt),
		ReviewedAt:      formatNullTime(r.ReviewedAt),
		StartedAt:       formatNullTime(r.StartedAt),
		ResolvedAt:      formatNullTime(r.ResolvedAt),
		ClosedAt:        formatNullTime(r.ClosedAt),
	}
	if category != nil {
		out.CategoryName = category.Name
		out.CategoryColor = nullString(category.Color)
	}
	return out
}

func toHistoryDTO(h *entities.ReportHistory) dto.ReportHistoryDTO {
	return dto.ReportHistoryDTO{
		ID:            h.ID.String(),
		ReportID:      h.ReportID.String(),
		ChangedBy:     nullString(h.ChangedBy),
		ChangedByName: h.ChangedByName,
		Action:        h.Action,
		ActionLabel:   constants.ActionLabels[h.Action],
		OldValue:      nullString(h.OldValue),
		NewValue:      nullString(h.NewValue),
		Comment:       nullString(h.Comment),
		CreatedAt:     formatTime(h.CreatedAt),
	}
}

func toCommentDTO(c *entities.ReportComment) dto.ReportCommentDTO {
	return dto.ReportCommentDTO{
		ID:         c.ID.String(),
		ReportID:   c.ReportID.String(),
		UserID:     c.UserID.String(),
		UserName:   c.UserName,
		Comment:    c.Comment,
		IsPublic:   c.IsPublic,
		IsInternal: c.IsInternal,
		CreatedAt:  formatTime(c.CreatedAt),
	}
}

// toReportFileDTO surfaces a creation-time file in the attachments listing.
// The uploader is always the report owner; the file type is derived from the
// stored extension.
func toReportFileDTO(f *entities.ReportFile, ownerID uuid.UUID) dto.ReportAttachmentDTO {
	name := filepath.Base(f.FilePath)
	return dto.ReportAttachmentDTO{
		ID:             f.ID.String(),
		ReportID:       f.ReportID.String(),
		UploadedBy:     ownerID.String(),
		FilePath:       f.FilePath,
		FileName:       name,
		FileType:       utils.ClassifyFileType(mime.TypeByExtension(filepath.Ext(name))),
		AttachmentType: constants.AttachmentInitial,
		CreatedAt:      formatTime(f.CreatedAt),
	}
}

func toAttachmentDTO(a *entities.ReportAttachment) dto.ReportAttachmentDTO {
	return dto.ReportAttachmentDTO{
		ID:             a.ID.String(),
		ReportID:       a.ReportID.String(),
		UploadedBy:     a.UploadedBy.String(),
		FilePath:       a.FilePath,
		FileName:       a.FileName,
		FileType:       a.FileType,
		AttachmentType: a.AttachmentType,
		FileSize:       a.FileSize,
		CreatedAt:      formatTime(a.CreatedAt),
	}
}

func toCategoryDTO(c *entities.Category) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: nullString(c.Description),
		Icon:        nullString(c.Icon),
		Color:       nullString(c.Color),
		IsActive:    c.IsActive,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

func toEntityDTO(e *entities.Entity) dto.EntityDTO {
	categories := make([]string, 0, len(e.Categories))
	for _, id := range e.Categories {
		categories = append(categories, id.String())
	}
	return dto.EntityDTO{
		ID:              e.ID.String(),
		UserID:          e.UserID.String(),
		Name:            e.Name,
		NIT:             e.NIT,
		ContactEmail:    e.ContactEmail,
		Phone:           nullString(e.Phone),
		Status:          e.Status,
		RejectionReason: nullString(e.RejectionReason),
		RutPath:         nullString(e.RutPath),
		ChamberPath:     nullString(e.ChamberPath),
		Categories:      categories,
		CreatedAt:       formatTime(e.CreatedAt),
		UpdatedAt:       formatNullTime(e.UpdatedAt),
	}
}

func toNotificationDTO(n *entities.Notification) dto.NotificationDTO {
	return dto.NotificationDTO{
		ID:        n.ID.String(),
		UserID:    n.UserID.String(),
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		Payload:   n.Payload,
		CreatedAt: formatTime(n.CreatedAt),
	}
}

func toUserDTO(u *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:        u.ID.String(),
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     nullString(u.Phone),
		Role:      u.Role,
		CreatedAt: formatTime(u.CreatedAt),
	}
}
