package repository

import (
	"context"

	"github.com/wfunc/fruit-slot/internal/errors"
	"github.com/wfunc/fruit-slot/internal/models"
	"gorm.io/gorm"
)

// SpinRecordRepository 旋转记录仓库接口
type SpinRecordRepository interface {
	// Create 创建旋转记录
	Create(ctx context.Context, record *models.SpinRecord) error
	// FindByPlayer 分页查询玩家的旋转记录 按时间倒序
	FindByPlayer(ctx context.Context, playerID string, p *Pagination) ([]*models.SpinRecord, error)
	// FindByResultID 根据结果ID查询
	FindByResultID(ctx context.Context, resultID string) (*models.SpinRecord, error)
	// WithTx 使用事务
	WithTx(tx *gorm.DB) SpinRecordRepository
}

// spinRecordRepo 旋转记录仓库实现
type spinRecordRepo struct {
	*BaseRepo
}

// NewSpinRecordRepository 创建旋转记录仓库
func NewSpinRecordRepository(db *gorm.DB) SpinRecordRepository {
	return &spinRecordRepo{BaseRepo: NewBaseRepo(db)}
}

// WithTx 使用事务
func (r *spinRecordRepo) WithTx(tx *gorm.DB) SpinRecordRepository {
	return &spinRecordRepo{BaseRepo: NewBaseRepo(tx)}
}

// Create 创建旋转记录
func (r *spinRecordRepo) Create(ctx context.Context, record *models.SpinRecord) error {
	if err := applyContext(ctx, r.db).Create(record).Error; err != nil {
		return errors.Wrap(err, errors.ErrDatabaseInsert, "创建旋转记录失败")
	}
	return nil
}

// FindByPlayer 分页查询玩家的旋转记录 按时间倒序
func (r *spinRecordRepo) FindByPlayer(ctx context.Context, playerID string, p *Pagination) ([]*models.SpinRecord, error) {
	db := applyContext(ctx, r.db).Model(&models.SpinRecord{}).Where("player_id = ?", playerID)

	if err := db.Count(&p.Total).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery, "统计旋转记录失败")
	}

	var records []*models.SpinRecord
	err := db.Preload("WinLines").
		Order("id DESC").
		Scopes(Paginate(p)).
		Find(&records).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery, "查询旋转记录失败")
	}
	return records, nil
}

// FindByResultID 根据结果ID查询
func (r *spinRecordRepo) FindByResultID(ctx context.Context, resultID string) (*models.SpinRecord, error) {
	var record models.SpinRecord
	err := applyContext(ctx, r.db).Preload("WinLines").
		Where("result_id = ?", resultID).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrNotFound, "旋转记录不存在")
		}
		return nil, errors.Wrap(err, errors.ErrDatabaseQuery, "查询旋转记录失败")
	}
	return &record, nil
}
