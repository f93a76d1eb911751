package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueStatus string

const (
	IssueNotStarted IssueStatus = "not_started"
	IssueInProgress IssueStatus = "in_progress"
	IssueResolved   IssueStatus = "resolved"
)

var IssueStatuses = []IssueStatus{IssueNotStarted, IssueInProgress, IssueResolved}

var (
	IssueCategories = []string{"hardware", "software", "network", "general"}
	IssuePriorities = []string{"low", "medium", "high", "critical"}
)

type IssueReport struct {
	ID              uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	TicketNumber    string      `gorm:"size:32;uniqueIndex" json:"ticket_number"`
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	Category        string      `gorm:"size:32;not null;default:general" json:"category"`
	Priority        string      `gorm:"size:32;not null;default:medium" json:"priority"`
	Status          IssueStatus `gorm:"size:16;not null;default:not_started;index" json:"status"`
	Department      string      `gorm:"size:128" json:"department"`
	ReportedBy      uuid.UUID   `gorm:"type:char(36);index" json:"reported_by"`
	ResolutionNotes string      `gorm:"type:text" json:"resolution_notes"`
	ResolvedAt      *time.Time  `json:"resolved_at"`
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`

	// заполняется AttachReporters, в БД не хранится
	Reporter *Profile `gorm:"-" json:"reporter,omitempty"`
}

func (i *IssueReport) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = IssueNotStarted
	}
	if i.TicketNumber == "" {
		i.TicketNumber = NewTicketNumber(time.Now().UTC(), i.ID)
	}
	return nil
}

// NewTicketNumber: IT-20240131-1A2B3C
func NewTicketNumber(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("IT-%s-%s", at.Format("20060102"), strings.ToUpper(id.String()[:6]))
}

// EffectiveDepartment: собственный department строки, иначе отдел автора.
func (i IssueReport) EffectiveDepartment() string {
	if i.Department != "" {
		return i.Department
	}
	if i.Reporter != nil {
		return i.Reporter.Department
	}
	return ""
}

// ReporterName: full name, затем email, затем "Unknown".
func (i IssueReport) ReporterName() string {
	if i.Reporter == nil {
		return "Unknown"
	}
	if i.Reporter.FullName != "" {
		return i.Reporter.FullName
	}
	if i.Reporter.Email != "" {
		return i.Reporter.Email
	}
	return "Unknown"
}
