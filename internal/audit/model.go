package audit

import (
	"time"
)

// AuditLog 审计日志，账本相关动作只追加记录
type AuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Module      string    `gorm:"type:varchar(50);index;not null" json:"module"`
	Action      string    `gorm:"type:varchar(50);index;not null" json:"action"`
	ResourceID  string    `gorm:"type:varchar(100)" json:"resource_id"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// Module 模块常量
const (
	ModuleDeposit    = "deposit"
	ModuleWithdrawal = "withdrawal"
	ModuleAsset      = "asset"
)

// Action 操作常量
const (
	ActionEvidence = "evidence"
	ActionCredit   = "credit"
	ActionReject   = "reject"
	ActionRequest  = "request"
	ActionApprove  = "approve"
	ActionSent     = "sent"
	ActionFailed   = "failed"
)

// TableName 表名
func (AuditLog) TableName() string {
	return "audit_logs"
}
