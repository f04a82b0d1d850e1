package store

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// KVEntry is one row of the postgres medium.
type KVEntry struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "trendr_kv"
}

// Postgres is a Medium stored in a PostgreSQL table through gorm.
type Postgres struct {
	db            *gorm.DB
	maxValueBytes int
}

// NewPostgres connects with dsn and migrates the kv table.
func NewPostgres(dsn string, maxValueBytes int) (*Postgres, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Postgres{db: db, maxValueBytes: maxValueBytes}, nil
}

func (p *Postgres) Get(key string) (string, bool, error) {
	var entry KVEntry

	result := p.db.Where("key = ?", key).Limit(1).Find(&entry)
	if result.Error != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, result.Error)
	}

	if result.RowsAffected == 0 {
		return "", false, nil
	}

	return entry.Value, true, nil
}

func (p *Postgres) Set(key, value string) error {
	if err := checkQuota(p.maxValueBytes, key, value); err != nil {
		return err
	}

	if err := p.db.Save(&KVEntry{Key: key, Value: value}).Error; err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

func (p *Postgres) Remove(key string) error {
	if err := p.db.Where("key = ?", key).Delete(&KVEntry{}).Error; err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

func (p *Postgres) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
