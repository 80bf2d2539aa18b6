package tracing

import (
	"campus-connect/config"
	"time"

	"github.com/getsentry/sentry-go"
	"gorm.io/gorm"
)

const (
	gormSpanKey  = "sentry:span"
	gormStartKey = "sentry:start"
)

// GormTracingPlugin 实现 GORM Plugin 接口，用于追踪数据库操作
type GormTracingPlugin struct {
	// slowThreshold 慢查询阈值，仅记录执行时间超过此值的查询
	// 设为 0 表示记录所有查询
	slowThreshold time.Duration
}

// NewGormTracingPlugin 创建 GORM Sentry 追踪插件
func NewGormTracingPlugin() *GormTracingPlugin {
	cfg := config.Get()
	threshold := time.Duration(cfg.Sentry.Tracing.DBSlowThresholdMs) * time.Millisecond
	return &GormTracingPlugin{
		slowThreshold: threshold,
	}
}

func (p *GormTracingPlugin) Name() string {
	return "SentryGormTracing"
}

func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	before := p.before()
	after := p.after()

	if err := db.Callback().Create().Before("gorm:create").Register("sentry_tracing:before_create", before); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("sentry_tracing:after_create", after); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("sentry_tracing:before_query", before); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("sentry_tracing:after_query", after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("sentry_tracing:before_update", before); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("sentry_tracing:after_update", after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("sentry_tracing:before_delete", before); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("sentry_tracing:after_delete", after); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("sentry_tracing:before_row", before); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("sentry_tracing:after_row", after); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("sentry_tracing:before_raw", before); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("sentry_tracing:after_raw", after)
}

// before 在 SQL 执行前创建子 span
func (p *GormTracingPlugin) before() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		parentSpan := sentry.SpanFromContext(ctx)
		if parentSpan == nil {
			return
		}

		span := parentSpan.StartChild("db.sql.query")
		span.SetData("db.system", "mysql")

		db.Statement.Context = span.Context()
		db.InstanceSet(gormSpanKey, span)
		db.InstanceSet(gormStartKey, time.Now())
	}
}

// after 在 SQL 执行后结束 span，慢于阈值的才会发送
func (p *GormTracingPlugin) after() func(db *gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(gormSpanKey)
		if !ok {
			return
		}
		span, ok := v.(*sentry.Span)
		if !ok {
			return
		}

		if sv, ok := db.InstanceGet(gormStartKey); ok {
			if start, ok := sv.(time.Time); ok {
				if p.slowThreshold > 0 && time.Since(start) < p.slowThreshold {
					span.Sampled = sentry.SampledFalse
				}
			}
		}

		span.Description = db.Statement.SQL.String()
		span.SetData("db.operation", db.Statement.Table)
		if db.Error != nil && db.Error != gorm.ErrRecordNotFound {
			span.Status = sentry.SpanStatusInternalError
			span.SetData("db.error", db.Error.Error())
		} else {
			span.Status = sentry.SpanStatusOK
		}

		span.Finish()
	}
}
