package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/abdulachik/descricoes/internal/app"
	"github.com/abdulachik/descricoes/internal/prompt"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a product description",
	Long: `Compile the product prompt, check the account's quota, call the
generation provider once and record the result in the account's history.`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("email", "", "account email")
	f.String("name", "", "product name")
	f.String("category", "", "product category")
	f.String("tone", prompt.Tones[0], "tone of voice")
	f.String("keywords", "", "comma separated keywords")
	f.String("size", prompt.SizeMedium, "size: short, medium, long or a full size label")
	f.String("template", "", "template id (see the templates command)")
	f.Bool("hashtags", false, "ask for hashtags")
	f.Bool("specs", false, "ask for a technical specifications section")
	f.String("format", prompt.FormatMarkdown, "output format")
	f.String("model", "", "model override")
	f.Float64("temperature", -1, "temperature between 0 and 1 (default from TEMPERATURE)")
	f.Bool("example", false, "fill name, category and keywords with a sample product")
	f.Bool("dry-run", false, "print the compiled prompt without calling the provider")
	f.Bool("raw", false, "print the model text instead of the formatted output")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := productInputFromFlags(cmd)

	a, err := loadApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		text, err := a.Preview(in)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		return fmt.Errorf("--email is required unless --dry-run is set")
	}
	sess, err := a.SessionByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find account: %w", err)
	}

	mc := a.DefaultModelConfig()
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		mc.Model = model
	}
	if temp, _ := cmd.Flags().GetFloat64("temperature"); temp >= 0 {
		mc.Temperature = temp
	}

	res, err := a.Generate(ctx, sess, in, mc)
	if err != nil {
		var qe *app.QuotaExceededError
		if errors.As(err, &qe) {
			return fmt.Errorf("quota exceeded: %d of %d descriptions used on plan %s; upgrade with 'descricoes user plan'",
				qe.Report.Used, qe.Report.Limit, qe.Report.Plan)
		}
		return fmt.Errorf("generate: %w", err)
	}

	slog.Info("description generated",
		"id", res.RecordID,
		"words", res.WordCount,
		"ceiling", res.WordCeiling,
	)

	if raw, _ := cmd.Flags().GetBool("raw"); raw {
		fmt.Println(res.Text)
	} else {
		fmt.Println(res.Formatted)
	}

	fmt.Fprintln(os.Stderr)
	if res.Quota.IsUnlimited() {
		fmt.Fprintf(os.Stderr, "Plan %s: unlimited\n", res.Quota.Plan)
	} else {
		fmt.Fprintf(os.Stderr, "Plan %s: %d of %d used, %d remaining\n",
			res.Quota.Plan, res.Quota.Used, res.Quota.Limit, res.Quota.Remaining)
	}
	return nil
}

func productInputFromFlags(cmd *cobra.Command) prompt.ProductInput {
	f := cmd.Flags()
	var in prompt.ProductInput
	in.Name, _ = f.GetString("name")
	in.Category, _ = f.GetString("category")
	in.Tone, _ = f.GetString("tone")
	in.Keywords, _ = f.GetString("keywords")
	in.Size, _ = f.GetString("size")
	in.TemplateID, _ = f.GetString("template")
	in.IncludeHashtags, _ = f.GetBool("hashtags")
	in.IncludeSpecs, _ = f.GetBool("specs")
	in.Format, _ = f.GetString("format")

	if example, _ := f.GetBool("example"); example {
		in = in.FillFromExample()
	}
	return in
}
