package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// BaseModel 模型公共字段
type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SymbolGrid 卷轴网格的JSON存储形式：grid[reel][row]
type SymbolGrid [][]string

// Value 实现driver.Valuer接口
func (g SymbolGrid) Value() (driver.Value, error) {
	if g == nil {
		return nil, nil
	}
	return json.Marshal(g)
}

// Scan 实现sql.Scanner接口
func (g *SymbolGrid) Scan(value interface{}) error {
	if value == nil {
		*g = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("不支持的网格存储类型")
	}

	return json.Unmarshal(data, g)
}
