package database

import (
	"fmt"
	"sync/atomic"

	"campus-connect/tools"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var testDBSeq atomic.Int64

// InitTest 用内存 sqlite 初始化数据库，每次调用都是一个全新的库
// 库名带序号并开启 cache=shared，连接池内的连接共享同一个库
// 仅供测试使用
func InitTest() {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		TranslateError: true,
		Logger:         logger.Discard,
	}

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	setup(DB)
}
