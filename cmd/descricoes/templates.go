package main

import (
	"fmt"
	"strings"

	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/prompt"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List templates and form options",
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolP("verbose", "v", false, "print template instructions")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	fmt.Println("Templates:")
	for _, t := range catalog.List() {
		fmt.Printf("  %-22s %s - %s\n", t.ID, t.Name, t.Description)
		if verbose {
			for _, line := range strings.Split(t.Instructions, "\n") {
				fmt.Printf("      %s\n", line)
			}
		}
	}
	fmt.Println()

	printList("Categories", prompt.Categories)
	printList("Tones", prompt.Tones)
	printList("Sizes", prompt.Sizes())
	printList("Formats", prompt.Formats)
	return nil
}

func printList(title string, values []string) {
	fmt.Printf("%s:\n", title)
	for _, v := range values {
		fmt.Printf("  %s\n", v)
	}
	fmt.Println()
}
