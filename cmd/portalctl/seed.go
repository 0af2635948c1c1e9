package main

import (
	"fmt"

	"github.com/businesscontrol/portal/internal/repositories"
	"github.com/businesscontrol/portal/internal/seed"
	"github.com/businesscontrol/portal/libs/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo cohort, an administrator and two students",
	Long: `Create demo data in a migrated database. Existing accounts, the demo cohort
and existing enrollments are left untouched, so the command can be run again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		seeder := seed.New(seed.Repositories{
			Users:       repositories.NewUserRepository(db, logger.Logger),
			Cohorts:     repositories.NewCohortRepository(db, logger.Logger),
			Weeks:       repositories.NewWeekRepository(db, logger.Logger),
			Enrollments: repositories.NewEnrollmentRepository(db, logger.Logger),
			Checklist:   repositories.NewChecklistProgressRepository(db),
			Submissions: repositories.NewSubmissionRepository(db, logger.Logger),
		}, logger.Logger)

		if err := seeder.Run(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded cohort %s, admin login %s\n", seed.CohortCode, seed.AdminEmail)
		return nil
	},
}
