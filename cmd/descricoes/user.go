package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a free-plan account",
	RunE:  runUserRegister,
}

var userPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Change an account's plan",
	Long:  `Change an account's plan to free, pro or enterprise. No payment is involved.`,
	RunE:  runUserPlan,
}

func init() {
	userRegisterCmd.Flags().String("email", "", "account email")
	userRegisterCmd.Flags().String("password", "", "account password (at least 6 characters)")
	_ = userRegisterCmd.MarkFlagRequired("email")
	_ = userRegisterCmd.MarkFlagRequired("password")

	userPlanCmd.Flags().String("email", "", "account email")
	userPlanCmd.Flags().String("plan", "", "free, pro or enterprise")
	_ = userPlanCmd.MarkFlagRequired("email")
	_ = userPlanCmd.MarkFlagRequired("plan")

	userCmd.AddCommand(userRegisterCmd, userPlanCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserRegister(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	acct, err := a.Accounts.Register(ctx, email, password)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	fmt.Printf("Account %d created for %s (plan %s)\n", acct.ID, acct.Email, acct.Plan)
	return nil
}

func runUserPlan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	email, _ := cmd.Flags().GetString("email")
	plan, _ := cmd.Flags().GetString("plan")

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sess, err := a.SessionByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	acct, err := a.ChangePlan(ctx, sess, plan)
	if err != nil {
		return fmt.Errorf("change plan: %w", err)
	}

	fmt.Printf("%s is now on plan %s\n", acct.Email, acct.Plan)
	return nil
}
