package tenant

import "gorm.io/gorm"

// Scope restricts a query to a single tenant. Every tenant-owned table
// carries a tenant_id column; repositories must apply this scope so
// cross-tenant reads fail closed.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
