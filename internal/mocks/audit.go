package mocks

import "chain-ledger/internal/audit"

// AuditRepo 内存审计仓储
type AuditRepo struct {
	Entries []*audit.AuditLog
}

// NewAuditRepo 创建内存审计仓储
func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

// Create 追加一条审计日志
func (m *AuditRepo) Create(log *audit.AuditLog) error {
	m.Entries = append(m.Entries, log)
	return nil
}

// ListByUser 列出用户审计日志
func (m *AuditRepo) ListByUser(userID uint, page, pageSize int) ([]*audit.AuditLog, int64, error) {
	var out []*audit.AuditLog
	for _, e := range m.Entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}
