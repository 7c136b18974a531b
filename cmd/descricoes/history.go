package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/export"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect, export or clear an account's descriptions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent descriptions, newest first",
	RunE:  runHistoryList,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every description of an account",
	Long:  `Delete every description of an account. Free-plan usage is counted from history, so this also resets the quota.`,
	RunE:  runHistoryClear,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history as CSV, or one description as an HTML page",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.PersistentFlags().String("email", "", "account email")
	_ = historyCmd.MarkPersistentFlagRequired("email")

	historyListCmd.Flags().Int("limit", 0, "number of records (default from HISTORY_LIMIT)")
	historyListCmd.Flags().Bool("full", false, "print the full text of each description")

	historyClearCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	historyExportCmd.Flags().Int64("id", 0, "description id to export as an HTML page")
	historyExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	historyCmd.AddCommand(historyListCmd, historyClearCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	email, _ := cmd.Flags().GetString("email")
	limit, _ := cmd.Flags().GetInt("limit")
	full, _ := cmd.Flags().GetBool("full")

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.SessionByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	items, err := a.History(ctx, sess, limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No descriptions yet.")
		return nil
	}

	for _, d := range items {
		fmt.Printf("#%d  %s  %s\n", d.ID, d.CreatedAt.Local().Format(export.DateLayout), d.ProductName)
		fmt.Printf("     %s | %s | %s | %s\n", d.Category, d.Tone, d.Size, catalog.Name(d.TemplateID))
		if full {
			fmt.Println()
			for _, line := range strings.Split(d.Output, "\n") {
				fmt.Printf("     %s\n", line)
			}
		}
		fmt.Println()
	}
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	email, _ := cmd.Flags().GetString("email")
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		fmt.Printf("Delete every description of %s? [y/N] ", email)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.SessionByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	removed, err := a.ClearHistory(ctx, sess)
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	fmt.Printf("Removed %d descriptions.\n", removed)
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	email, _ := cmd.Flags().GetString("email")
	id, _ := cmd.Flags().GetInt64("id")
	output, _ := cmd.Flags().GetString("output")

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.SessionByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	if id > 0 {
		err = a.ExportPage(ctx, sess, id, w)
	} else {
		err = a.ExportCSV(ctx, sess, w)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", output)
	}
	return nil
}
