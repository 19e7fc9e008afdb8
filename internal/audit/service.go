package audit

import (
	"chain-ledger/pkg/logger"

	"gorm.io/gorm"
)

// Repository 审计仓储接口
type Repository interface {
	Create(log *AuditLog) error
	ListByUser(userID uint, page, pageSize int) ([]*AuditLog, int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository 创建审计仓储
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create 创建审计日志
func (r *repository) Create(log *AuditLog) error {
	return r.db.Create(log).Error
}

// ListByUser 列出用户审计日志
func (r *repository) ListByUser(userID uint, page, pageSize int) ([]*AuditLog, int64, error) {
	var logs []*AuditLog
	var total int64

	r.db.Model(&AuditLog{}).Where("user_id = ?", userID).Count(&total)

	offset := (page - 1) * pageSize
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// Service 审计服务接口
type Service interface {
	Record(userID uint, module, action, resourceID, description string)
	ListByUser(userID uint, page, pageSize int) ([]*AuditLog, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建审计服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Record 记录一条审计日志，失败只打日志，不影响主流程
func (s *service) Record(userID uint, module, action, resourceID, description string) {
	entry := &AuditLog{
		UserID:      userID,
		Module:      module,
		Action:      action,
		ResourceID:  resourceID,
		Description: description,
	}
	if err := s.repo.Create(entry); err != nil {
		logger.Errorf("Failed to write audit log (%s/%s %s): %v", module, action, resourceID, err)
	}
}

// ListByUser 列出用户审计日志
func (s *service) ListByUser(userID uint, page, pageSize int) ([]*AuditLog, int64, error) {
	return s.repo.ListByUser(userID, page, pageSize)
}
