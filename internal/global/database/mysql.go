package database

import (
	"campus-connect/config"
	"campus-connect/internal/global/sentry/tracing"
	"campus-connect/internal/model"
	"campus-connect/tools"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Club{},
	&model.UserClub{},
	&model.Event{},
	&model.EventAttendee{},
	&model.Recruitment{},
	&model.Applicant{},
	// 在这里添加其他模型
}

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,                                      // 把驱动错误翻译成 gorm.ErrDuplicatedKey 等
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	if tracing.IsEnabled() {
		tools.PanicOnErr(DB.Use(tracing.NewGormTracingPlugin()))
	}

	setup(DB)
}

// setup 配置关联表并执行自动迁移，MySQL 与测试用的 sqlite 共用
func setup(db *gorm.DB) {
	// 成员关系与报名关系使用显式关联表，复合主键保证不重复
	tools.PanicOnErr(db.SetupJoinTable(&model.User{}, "Clubs", &model.UserClub{}))
	tools.PanicOnErr(db.SetupJoinTable(&model.Event{}, "Attendees", &model.EventAttendee{}))

	// 使用模型列表进行自动迁移
	tools.PanicOnErr(db.AutoMigrate(autoMigrateModels...))
}
