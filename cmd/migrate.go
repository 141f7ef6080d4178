package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-billing/app/migrations"
)

var migrateDown bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Run: func(_ *cobra.Command, _ []string) {
		cfg := mustLoadConfig()
		db, err := openDatabase(cfg)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()

		if migrateDown {
			err = migrations.Down(db)
		} else {
			err = migrations.Up(db)
		}
		if err != nil {
			logrus.WithError(err).WithField("down", migrateDown).Fatal("Migration failed")
		}
		logrus.WithField("down", migrateDown).Info("Migrations applied")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().BoolVar(&migrateDown, "down", false, "Roll back the most recent migration")
}
