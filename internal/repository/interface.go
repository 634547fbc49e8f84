package repository

import (
	"context"

	"gorm.io/gorm"
)

// BaseRepository 基础仓库接口
type BaseRepository interface {
	// WithTx 使用事务
	WithTx(tx *gorm.DB) BaseRepository
	// DB 获取数据库连接
	DB() *gorm.DB
}

// BaseRepo 基础仓库实现
type BaseRepo struct {
	db *gorm.DB
}

// NewBaseRepo 创建基础仓库
func NewBaseRepo(db *gorm.DB) *BaseRepo {
	return &BaseRepo{db: db}
}

// DB 获取数据库连接
func (r *BaseRepo) DB() *gorm.DB {
	return r.db
}

// Pagination 分页参数
type Pagination struct {
	Page     int   `json:"page" form:"page"`
	PageSize int   `json:"page_size" form:"page_size"`
	Total    int64 `json:"total"`
}

// GetOffset 获取偏移量
func (p *Pagination) GetOffset() int {
	if p.Page <= 0 {
		p.Page = 1
	}
	return (p.Page - 1) * p.GetLimit()
}

// GetLimit 获取每页数量
func (p *Pagination) GetLimit() int {
	if p.PageSize <= 0 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p.PageSize
}

// Paginate 分页查询
func Paginate(p *Pagination) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.GetOffset()).Limit(p.GetLimit())
	}
}

// applyContext 附加上下文
func applyContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if ctx == nil {
		return db
	}
	return db.WithContext(ctx)
}
