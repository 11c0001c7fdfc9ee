package models

import (
	"time"

	"github.com/lib/pq"
)

type ApprovalWorkflowModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string
	Description string
	IsDefault   bool
	Priority    int `gorm:"index:idx_workflows_priority"`
	MinValue    float64
	MaxValue    float64
	Tiers       pq.StringArray      `gorm:"type:text[]"`
	Territories pq.StringArray      `gorm:"type:text[]"`
	IsActive    bool                `gorm:"default:true"`
	Steps       []ApprovalStepModel `gorm:"foreignKey:WorkflowID;references:ID;constraint:OnDelete:CASCADE;"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ApprovalStepModel struct {
	ID                   uint   `gorm:"primaryKey;autoIncrement"`
	WorkflowID           string `gorm:"index:idx_steps_workflow"`
	StepNumber           int
	RequiredRole         string
	Required             bool `gorm:"default:true"`
	AutoApproveThreshold *float64
}

// DealApprovalModel rows are append-only; ApprovedAt IS NULL marks the single
// unresolved step per deal, enforced by a partial unique index in migrations.
type DealApprovalModel struct {
	ID           string `gorm:"primaryKey"`
	DealID       string `gorm:"type:uuid;index:idx_approvals_deal"`
	WorkflowID   string
	StepNumber   int
	RequiredRole string `gorm:"index:idx_approvals_role"`
	AssignedTo   string
	ApproverID   string
	Action       string
	Comments     string
	CreatedAt    time.Time
	ApprovedAt   *time.Time
}
