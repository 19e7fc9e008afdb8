package mocks

import "gorm.io/gorm"

// Transactor 直通事务执行器，回调拿到的 tx 为 nil，
// 搭配同样忽略 tx 的内存仓储使用
type Transactor struct{}

// Transaction 直接执行回调
func (Transactor) Transaction(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}
