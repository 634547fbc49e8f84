package repository

import (
	"time"

	"github.com/wfunc/fruit-slot/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB 为测试套件设置测试数据库
func SetupTestDB() *gorm.DB {
	// 使用内存数据库进行测试（更快，不需要文件系统，在所有环境中都能工作）
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.Player{},
		&models.SpinRecord{},
		&models.SpinWinLine{},
	)
	if err != nil {
		panic(err)
	}

	return db
}

// CleanupTestDB 清理测试数据库
func CleanupTestDB(db *gorm.DB) {
	sqlDB, _ := db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

// CreateTestPlayer 创建测试玩家
func CreateTestPlayer(playerID string, balance int64) *models.Player {
	return &models.Player{
		PlayerID: playerID,
		Balance:  balance,
	}
}

// CreateTestSpinRecord 创建测试旋转记录
func CreateTestSpinRecord(resultID, playerID string, betPerLine int64, numLines int, totalPayout int64) *models.SpinRecord {
	return &models.SpinRecord{
		ResultID:    resultID,
		PlayerID:    playerID,
		BetPerLine:  betPerLine,
		NumLines:    numLines,
		TotalBet:    betPerLine * int64(numLines),
		TotalPayout: totalPayout,
		Reels: models.SymbolGrid{
			{"CHERRY", "LEMON", "ORANGE"},
			{"CHERRY", "PLUM", "BELL"},
			{"CHERRY", "BAR", "SEVEN"},
			{"LEMON", "WILD", "CHERRY"},
			{"ORANGE", "BELL", "PLUM"},
		},
		PlayedAt: time.Now(),
	}
}
