package cmd

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vizlens/vizlens/internal/core"
	"github.com/vizlens/vizlens/internal/core/engine"
	"github.com/vizlens/vizlens/internal/output"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run a visibility audit for one business",
	Long: `Run the full visibility audit: fetch the website, discover social
profiles and the Google Business Profile, run deep probes, and produce
scored results with AI verification.

Input comes from flags or from a YAML file via --input.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().String("input", "", "YAML file with the audit input")
	auditCmd.Flags().String("url", "", "Website URL to audit")
	auditCmd.Flags().String("name", "", "Business name")
	auditCmd.Flags().String("industry", "", "Industry")
	auditCmd.Flags().StringSlice("country", nil, "Country (repeatable)")
	auditCmd.Flags().StringSlice("city", nil, "City (repeatable)")
	auditCmd.Flags().String("audience", "", "Target audience")
	auditCmd.Flags().String("description", "", "Business description")
	auditCmd.Flags().StringSlice("keywords", nil, "Target keywords")
	auditCmd.Flags().StringSlice("competitors", nil, "Competitor names or URLs")
	auditCmd.Flags().String("output", "table", "Output format: table, json")
}

func runAudit(cmd *cobra.Command, args []string) error {
	input, err := auditInput(cmd)
	if err != nil {
		return err
	}
	if err := validateInput(input); err != nil {
		return err
	}

	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := newCLILogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting audit",
		zap.String("url", input.WebsiteURL),
		zap.String("business", input.BusinessName))

	response := engine.New(cfg, logger).Run(cmd.Context(), *input)

	rendered, err := output.NewFormatter(format).FormatAudit(&response)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return nil
}

// auditInput assembles the input from --input and flags; flags override
// file values.
func auditInput(cmd *cobra.Command) (*core.AuditInput, error) {
	input := &core.AuditInput{}

	if path, _ := cmd.Flags().GetString("input"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		if err := yaml.Unmarshal(data, input); err != nil {
			return nil, fmt.Errorf("parse input file: %w", err)
		}
	}

	if v, _ := cmd.Flags().GetString("url"); v != "" {
		input.WebsiteURL = v
	}
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		input.BusinessName = v
	}
	if v, _ := cmd.Flags().GetString("industry"); v != "" {
		input.Industry = v
	}
	if v, _ := cmd.Flags().GetStringSlice("country"); len(v) > 0 {
		input.Country = core.StringList(v)
	}
	if v, _ := cmd.Flags().GetStringSlice("city"); len(v) > 0 {
		input.City = core.StringList(v)
	}
	if v, _ := cmd.Flags().GetString("audience"); v != "" {
		input.TargetAudience = v
	}
	if v, _ := cmd.Flags().GetString("description"); v != "" {
		input.Description = v
	}
	if v, _ := cmd.Flags().GetStringSlice("keywords"); len(v) > 0 {
		input.Keywords = v
	}
	if v, _ := cmd.Flags().GetStringSlice("competitors"); len(v) > 0 {
		input.Competitors = v
	}

	return input, nil
}

func validateInput(input *core.AuditInput) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	missing := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		missing = append(missing, fe.Field())
	}
	return fmt.Errorf("invalid input, check these fields: %s", strings.Join(missing, ", "))
}

func outputFormat(cmd *cobra.Command) (output.Format, error) {
	raw, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", err
	}
	return output.ParseFormat(raw)
}
