package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"dumbbell/config"
	dbpkg "dumbbell/db"
	"dumbbell/router"
	"dumbbell/services"
	"dumbbell/workers"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/spf13/cobra"
)

var (
	configPath string

	suEmail    string
	suPassword string
	suName     string
)

var rootCmd = &cobra.Command{
	Use:   "dumbbell",
	Short: "Dumbbell gym back office",
	Long: `Dumbbell serves the gym back office API: students, cards, plans,
enrollments, exercises and workouts.

USAGE:

  dumbbell                      # same as 'dumbbell serve'
  dumbbell migrate              # create or update the schema
  dumbbell createsuperuser --email admin@dumbbell.com --password secret`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf := config.Get(configPath)

		logFile, err := openLogFile(conf.LogPath)
		if err != nil {
			return err
		}
		defer logFile.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, logFile))

		database, err := openDatabase(conf)
		if err != nil {
			return err
		}
		defer database.Close()

		workers.StartTokenJanitor(database, time.Duration(conf.Security.TokenTTLHours)*time.Hour)

		r := gin.New()
		router.Initialize(r, conf, database)

		color.Green("Dumbbell listening on :%s", conf.ApiPort)
		return r.Run(":" + conf.ApiPort)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(config.Get(configPath))
		if err != nil {
			return err
		}
		defer database.Close()

		color.Green("✓ Schema up to date")
		return nil
	},
}

var createSuperuserCmd = &cobra.Command{
	Use:   "createsuperuser",
	Short: "Create an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if suEmail == "" || suPassword == "" {
			return fmt.Errorf("--email and --password are required")
		}
		conf := config.Get(configPath)

		database, err := openDatabase(conf)
		if err != nil {
			return err
		}
		defer database.Close()

		user, err := services.CreateSuperuser(database, suEmail, suPassword, suName, conf.Security.BcryptCost)
		if err != nil {
			color.Red("✗ %v", err)
			return err
		}
		color.Green("✓ Superuser %s created (id %d)", user.Username, user.ID)
		return nil
	},
}

// openDatabase connects and migrates, every command needs both.
func openDatabase(conf config.Configuration) (*gorm.DB, error) {
	database, err := dbpkg.Connect(conf)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := dbpkg.Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Printf("database ready (%s)", conf.Database)
	return database, nil
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "path to the JSON configuration file")

	createSuperuserCmd.Flags().StringVar(&suEmail, "email", "", "login e-mail")
	createSuperuserCmd.Flags().StringVar(&suPassword, "password", "", "password")
	createSuperuserCmd.Flags().StringVar(&suName, "name", "", "first name")

	rootCmd.AddCommand(serveCmd, migrateCmd, createSuperuserCmd)
}
