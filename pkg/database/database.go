package database

import (
	"fmt"
	"log"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// AutoMigrate 测试用的 sqlite 库也走同一份迁移
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Course{},
		&model.UserStudyingCourse{},
		&model.UserTeachingCourse{},
		&model.Section{},
		&model.Step{},
		&model.TextTask{},
		&model.OpenEndedTask{},
		&model.TestTask{},
		&model.SortingTask{},
		&model.TestOption{},
		&model.SortingOption{},
		&model.Attempt{},
		&model.UserInput{},
		&model.AttemptTestOption{},
		&model.AttemptSortingOption{},
		&model.Review{},
	)
}
