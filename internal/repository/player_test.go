package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/fruit-slot/internal/models"
	"gorm.io/gorm"
)

// PlayerRepositoryTestSuite 玩家仓储测试套件
type PlayerRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo PlayerRepository
}

// SetupSuite 设置测试套件
func (suite *PlayerRepositoryTestSuite) SetupSuite() {
	suite.db = SetupTestDB()
	suite.repo = NewPlayerRepository(suite.db)
}

// TearDownSuite 清理测试套件
func (suite *PlayerRepositoryTestSuite) TearDownSuite() {
	CleanupTestDB(suite.db)
}

// SetupTest 每个测试前执行
func (suite *PlayerRepositoryTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM players")
}

// TestLoad_NewPlayer 测试加载不存在的玩家返回默认余额
func (suite *PlayerRepositoryTestSuite) TestLoad_NewPlayer() {
	ctx := context.Background()

	player, err := suite.repo.Load(ctx, "alice", 1000)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", player.PlayerID)
	assert.Equal(suite.T(), int64(1000), player.Balance)
	assert.Zero(suite.T(), player.ID) // 尚未持久化

	// 未保存前数据库中不应有记录
	exists, err := suite.repo.Exists(ctx, "alice")
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), exists)
}

// TestSaveAndLoad 测试保存后加载
func (suite *PlayerRepositoryTestSuite) TestSaveAndLoad() {
	ctx := context.Background()

	player := CreateTestPlayer("bob", 500)
	player.TotalSpins = 10
	player.TotalWins = 3
	player.BiggestWin = 200

	err := suite.repo.Save(ctx, player)
	assert.NoError(suite.T(), err)

	loaded, err := suite.repo.Load(ctx, "bob", 1000)
	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), loaded.ID)
	assert.Equal(suite.T(), int64(500), loaded.Balance)
	assert.Equal(suite.T(), int64(10), loaded.TotalSpins)
	assert.Equal(suite.T(), int64(3), loaded.TotalWins)
	assert.Equal(suite.T(), int64(200), loaded.BiggestWin)
}

// TestSave_Upsert 测试重复保存按player_id更新
func (suite *PlayerRepositoryTestSuite) TestSave_Upsert() {
	ctx := context.Background()

	err := suite.repo.Save(ctx, CreateTestPlayer("carol", 1000))
	assert.NoError(suite.T(), err)

	// 以新值再次保存（模拟另一处加载后的覆盖写入）
	err = suite.repo.Save(ctx, CreateTestPlayer("carol", 850))
	assert.NoError(suite.T(), err)

	var count int64
	suite.db.Model(&models.Player{}).Where("player_id = ?", "carol").Count(&count)
	assert.Equal(suite.T(), int64(1), count)

	loaded, err := suite.repo.Load(ctx, "carol", 1000)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(850), loaded.Balance)
}

// TestSave_UpdateLoaded 测试更新已加载的玩家
func (suite *PlayerRepositoryTestSuite) TestSave_UpdateLoaded() {
	ctx := context.Background()

	err := suite.repo.Save(ctx, CreateTestPlayer("dave", 1000))
	assert.NoError(suite.T(), err)

	loaded, err := suite.repo.Load(ctx, "dave", 1000)
	assert.NoError(suite.T(), err)

	loaded.Balance = 1234
	loaded.TotalSpins = 1
	err = suite.repo.Save(ctx, loaded)
	assert.NoError(suite.T(), err)

	again, err := suite.repo.Load(ctx, "dave", 1000)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1234), again.Balance)
	assert.Equal(suite.T(), int64(1), again.TotalSpins)
}

// TestPlayerRepositoryTestSuite 运行测试套件
func TestPlayerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PlayerRepositoryTestSuite))
}
