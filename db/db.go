package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"dumbbell/config"
	"dumbbell/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Connect abre conexão com o DB configurado (sqlite3 por padrão).
func Connect(conf config.Configuration) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	switch conf.Database {
	case "postgres", "postgresql":
		log.Println("Utilizando conexão com o postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass + " sslmode=" + conf.DbSSLMode
		db, err = Open("postgres", path)
	default:
		log.Println("Utilizando conexão com o sqlite3...")
		if dir := filepath.Dir(conf.DbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		db, err = Open("sqlite3", conf.DbPath+"?_foreign_keys=on&_busy_timeout=5000")
	}
	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	db.LogMode(conf.SqlLog)
	return db, nil
}

// Open is the dialect-level entry point. For sqlite the pool is pinned to a
// single connection so ":memory:" databases are shared and writers serialize.
func Open(dialect, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, err
	}
	if dialect == "sqlite3" {
		db.DB().SetMaxOpenConns(1)
	}
	return db, nil
}

// Migrate creates the tables and the constraints AutoMigrate cannot express.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.AuthToken{},
		&models.Address{},
		&models.Student{},
		&models.Card{},
		&models.Plan{},
		&models.Enrollment{},
		&models.Exercise{},
		&models.Workout{},
		&models.WorkoutExercise{},
		&models.Modality{},
		&models.PlanModality{},
	).Error
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	err = db.Model(&models.Address{}).
		AddUniqueIndex("ux_addresses_fields", models.ADDRESS_UNIQUE_COLUMNS...).Error
	if err != nil {
		return fmt.Errorf("address index: %w", err)
	}

	err = db.Model(&models.PlanModality{}).
		AddUniqueIndex("ux_plan_modalities", "plan_id", "modality_id").Error
	if err != nil {
		return fmt.Errorf("plan modality index: %w", err)
	}

	// one active enrollment per student
	err = db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS ux_enrollments_student_active " +
		"ON enrollments (student_id) WHERE active").Error
	if err != nil {
		return fmt.Errorf("enrollment index: %w", err)
	}

	return nil
}
