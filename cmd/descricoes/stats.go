package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdulachik/descricoes/internal/app"
	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/export"
	"github.com/abdulachik/descricoes/internal/quota"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	Long: `Display totals for the whole database, or the analytics of one
account when --email is given.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("email", "", "show analytics for this account")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	email, _ := cmd.Flags().GetString("email")

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if email != "" {
		return accountStats(ctx, a, email)
	}

	var totalAccounts, totalDescriptions int64
	if err := a.Store.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&totalAccounts); err != nil {
		return fmt.Errorf("count accounts: %w", err)
	}
	if err := a.Store.QueryRowContext(ctx, "SELECT COUNT(*) FROM descriptions").Scan(&totalDescriptions); err != nil {
		return fmt.Errorf("count descriptions: %w", err)
	}

	byPlan := make(map[string]int64)
	rows, err := a.Store.QueryContext(ctx, "SELECT plan, COUNT(*) FROM accounts GROUP BY plan")
	if err != nil {
		slog.Warn("failed to count accounts by plan", "error", err)
	} else {
		defer rows.Close()
		for rows.Next() {
			var plan string
			var n int64
			if err := rows.Scan(&plan, &n); err != nil {
				return fmt.Errorf("scan plan count: %w", err)
			}
			byPlan[plan] = n
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("count accounts by plan: %w", err)
		}
	}

	fmt.Println("=== Descrições Statistics ===")
	fmt.Println()
	fmt.Printf("Accounts:     %d\n", totalAccounts)
	for _, p := range quota.Plans {
		fmt.Printf("  %-12s %d\n", p.String()+":", byPlan[p.String()])
	}
	fmt.Printf("Descriptions: %d\n", totalDescriptions)
	return nil
}

func accountStats(ctx context.Context, a *app.App, email string) error {
	sess, err := a.SessionByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	summary, err := a.Analytics(ctx, sess)
	if err != nil {
		return err
	}
	report, err := a.Quota(ctx, sess)
	if err != nil {
		return err
	}

	fmt.Printf("=== %s ===\n", sess.Email)
	fmt.Println()
	if report.IsUnlimited() {
		fmt.Printf("Plan:          %s (unlimited)\n", report.Plan)
	} else {
		fmt.Printf("Plan:          %s (%d of %d used)\n", report.Plan, report.Used, report.Limit)
	}
	fmt.Printf("Descriptions:  %d\n", summary.Total)
	if summary.LastActivity != nil {
		fmt.Printf("Last activity: %s\n", summary.LastActivity.Local().Format(export.DateLayout))
	}
	if summary.Total == 0 {
		return nil
	}
	fmt.Printf("Top category:  %s\n", summary.MostUsedCategory)
	fmt.Printf("Top template:  %s\n", summary.FavoriteTemplate)

	fmt.Println()
	fmt.Println("By category:")
	for _, c := range summary.Categories {
		fmt.Printf("  %-24s %d\n", c.Value, c.Count)
	}
	fmt.Println()
	fmt.Println("By template:")
	for _, t := range summary.Templates {
		fmt.Printf("  %-24s %d\n", catalog.Name(t.Value), t.Count)
	}
	return nil
}
