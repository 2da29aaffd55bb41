package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/db"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/progress"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/users"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with demo users and tickets",
	Long:  `Creates a small set of demo users and break-glass tickets for local development and manual testing.`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedCount, "count", len(seedTickets), "number of demo tickets to create")
	rootCmd.AddCommand(seedCmd)
}

var seedUsers = []users.User{
	{ID: "alice", Name: "Alice Mokoena", Email: "alice@example.com", Role: users.RoleUser, Authorized: true},
	{ID: "bob", Name: "Bob Naidoo", Email: "bob@example.com", Role: users.RoleUser, Authorized: true},
	{ID: "carol", Name: "Carol van Wyk", Email: "carol@example.com", Role: users.RoleUser, Authorized: true},
	{ID: "admin1", Name: "Dineo Admin", Email: "admin@example.com", Role: users.RoleAdmin, Authorized: true},
}

var seedTickets = []tickets.Ticket{
	{UserID: "alice", Description: "payroll system access", EmergencyType: "hr-emergency", DurationMinutes: 60, Priority: tickets.PriorityHigh},
	{UserID: "alice", Description: "server room door override", EmergencyType: "logistics-emergency", DurationMinutes: 30, Location: "server room"},
	{UserID: "bob", Description: "month-end ledger correction", EmergencyType: "financial-emergency", DurationMinutes: 120, Priority: tickets.PriorityCritical},
	{UserID: "carol", Description: "board report retrieval", EmergencyType: "management-emergency", DurationMinutes: 45},
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	ctx := context.Background()
	userStore := users.NewStore(database)
	ticketStore := tickets.NewStore(database)

	if seedCount < 0 {
		seedCount = 0
	}

	reporter := progress.NewReporter("Seeding demo data")
	reporter.Start(len(seedUsers) + seedCount)
	done := 0

	for _, u := range seedUsers {
		if err := userStore.Create(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.ID, err)
		}
		done++
		reporter.Update(done, "user "+u.ID)
	}

	// Templates cycle when --count exceeds the base set.
	for i := 0; i < seedCount; i++ {
		t := seedTickets[i%len(seedTickets)]
		created, err := ticketStore.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("seeding ticket for %s: %w", t.UserID, err)
		}
		done++
		reporter.Update(done, "ticket #"+created.ID)
	}

	reporter.Finish()
	fmt.Printf("Seeded %d users and %d tickets into %s\n", len(seedUsers), seedCount, cfg.DatabasePath)
	return nil
}
