package repository

import (
	"context"

	"github.com/wfunc/fruit-slot/internal/errors"
	"github.com/wfunc/fruit-slot/internal/logger"
	"github.com/wfunc/fruit-slot/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PlayerRepository 玩家仓库接口
type PlayerRepository interface {
	// Load 加载玩家 不存在或数据损坏时返回默认余额的新玩家
	Load(ctx context.Context, playerID string, defaultBalance int64) (*models.Player, error)
	// Save 保存玩家 按 player_id 幂等更新
	Save(ctx context.Context, player *models.Player) error
	// Exists 玩家是否存在
	Exists(ctx context.Context, playerID string) (bool, error)
	// WithTx 使用事务
	WithTx(tx *gorm.DB) PlayerRepository
}

// playerRepo 玩家仓库实现
type playerRepo struct {
	*BaseRepo
}

// NewPlayerRepository 创建玩家仓库
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepo{BaseRepo: NewBaseRepo(db)}
}

// WithTx 使用事务
func (r *playerRepo) WithTx(tx *gorm.DB) PlayerRepository {
	return &playerRepo{BaseRepo: NewBaseRepo(tx)}
}

// Load 加载玩家 不存在或数据损坏时返回默认余额的新玩家
func (r *playerRepo) Load(ctx context.Context, playerID string, defaultBalance int64) (*models.Player, error) {
	var player models.Player
	err := applyContext(ctx, r.db).Where("player_id = ?", playerID).First(&player).Error
	if err == nil {
		return &player, nil
	}
	if err != gorm.ErrRecordNotFound {
		// 数据损坏或读取失败 静默回退为新玩家
		logger.Warn("加载玩家失败 使用默认余额新建",
			zap.String("player_id", playerID),
			zap.Error(err))
	}
	return &models.Player{
		PlayerID: playerID,
		Balance:  defaultBalance,
	}, nil
}

// Save 保存玩家 按 player_id 幂等更新
func (r *playerRepo) Save(ctx context.Context, player *models.Player) error {
	db := applyContext(ctx, r.db)
	var err error
	if player.ID != 0 {
		err = db.Save(player).Error
	} else {
		err = db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"balance", "total_spins", "total_wins", "biggest_win", "updated_at",
			}),
		}).Create(player).Error
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrDatabaseQuery, "保存玩家失败")
	}
	return nil
}

// Exists 玩家是否存在
func (r *playerRepo) Exists(ctx context.Context, playerID string) (bool, error) {
	var count int64
	err := applyContext(ctx, r.db).Model(&models.Player{}).
		Where("player_id = ?", playerID).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, errors.ErrDatabaseQuery, "查询玩家失败")
	}
	return count > 0, nil
}
