package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/wfunc/fruit-slot/internal/models"
	"gorm.io/gorm"
)

// SpinRecordRepositoryTestSuite 旋转记录仓储测试套件
type SpinRecordRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo SpinRecordRepository
}

// SetupSuite 设置测试套件
func (suite *SpinRecordRepositoryTestSuite) SetupSuite() {
	suite.db = SetupTestDB()
	suite.repo = NewSpinRecordRepository(suite.db)
}

// TearDownSuite 清理测试套件
func (suite *SpinRecordRepositoryTestSuite) TearDownSuite() {
	CleanupTestDB(suite.db)
}

// SetupTest 每个测试前执行
func (suite *SpinRecordRepositoryTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM spin_win_lines")
	suite.db.Exec("DELETE FROM spin_records")
}

// TestCreate 测试创建旋转记录
func (suite *SpinRecordRepositoryTestSuite) TestCreate() {
	ctx := context.Background()

	record := CreateTestSpinRecord("spin-001", "alice", 2, 5, 50)
	record.WinLines = []models.SpinWinLine{
		{PaylineID: 1, Symbol: "CHERRY", Count: 3, Payout: 10},
		{PaylineID: 3, Symbol: "BELL", Count: 4, Payout: 40},
	}

	err := suite.repo.Create(ctx, record)
	assert.NoError(suite.T(), err)
	assert.NotZero(suite.T(), record.ID)

	// 中奖线随记录一并写入
	var lines int64
	suite.db.Model(&models.SpinWinLine{}).Where("spin_id = ?", record.ID).Count(&lines)
	assert.Equal(suite.T(), int64(2), lines)
}

// TestCreate_DuplicateResultID 测试结果ID唯一
func (suite *SpinRecordRepositoryTestSuite) TestCreate_DuplicateResultID() {
	ctx := context.Background()

	err := suite.repo.Create(ctx, CreateTestSpinRecord("spin-dup", "alice", 1, 5, 0))
	assert.NoError(suite.T(), err)

	err = suite.repo.Create(ctx, CreateTestSpinRecord("spin-dup", "alice", 1, 5, 0))
	assert.Error(suite.T(), err)
}

// TestFindByPlayer 测试分页查询玩家记录
func (suite *SpinRecordRepositoryTestSuite) TestFindByPlayer() {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		record := CreateTestSpinRecord(fmt.Sprintf("spin-a-%d", i), "alice", 1, 5, int64(i*10))
		err := suite.repo.Create(ctx, record)
		assert.NoError(suite.T(), err)
	}
	err := suite.repo.Create(ctx, CreateTestSpinRecord("spin-b-0", "bob", 1, 5, 0))
	assert.NoError(suite.T(), err)

	p := &Pagination{Page: 1, PageSize: 3}
	records, err := suite.repo.FindByPlayer(ctx, "alice", p)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 3)
	assert.Equal(suite.T(), int64(5), p.Total)

	// 最新的记录排在前面
	assert.Equal(suite.T(), "spin-a-4", records[0].ResultID)
	assert.Equal(suite.T(), "spin-a-3", records[1].ResultID)

	// 第二页
	p2 := &Pagination{Page: 2, PageSize: 3}
	records2, err := suite.repo.FindByPlayer(ctx, "alice", p2)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records2, 2)
	assert.Equal(suite.T(), "spin-a-0", records2[1].ResultID)
}

// TestFindByPlayer_LoadsWinLines 测试查询预加载中奖线
func (suite *SpinRecordRepositoryTestSuite) TestFindByPlayer_LoadsWinLines() {
	ctx := context.Background()

	record := CreateTestSpinRecord("spin-win", "carol", 2, 5, 100)
	record.WinLines = []models.SpinWinLine{
		{PaylineID: 2, Symbol: "SEVEN", Count: 3, Payout: 100},
	}
	err := suite.repo.Create(ctx, record)
	assert.NoError(suite.T(), err)

	records, err := suite.repo.FindByPlayer(ctx, "carol", &Pagination{Page: 1, PageSize: 10})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), records, 1)
	assert.Len(suite.T(), records[0].WinLines, 1)
	assert.Equal(suite.T(), "SEVEN", records[0].WinLines[0].Symbol)
	assert.True(suite.T(), records[0].IsWin())
}

// TestFindByResultID 测试按结果ID查询
func (suite *SpinRecordRepositoryTestSuite) TestFindByResultID() {
	ctx := context.Background()

	err := suite.repo.Create(ctx, CreateTestSpinRecord("spin-find", "dave", 3, 5, 0))
	assert.NoError(suite.T(), err)

	found, err := suite.repo.FindByResultID(ctx, "spin-find")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "dave", found.PlayerID)
	assert.Equal(suite.T(), int64(15), found.TotalBet)

	_, err = suite.repo.FindByResultID(ctx, "missing")
	assert.Error(suite.T(), err)
}

// TestSpinRecordRepositoryTestSuite 运行测试套件
func TestSpinRecordRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SpinRecordRepositoryTestSuite))
}
