package main

import (
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/gqlls/internal/graphql"
	"bennypowers.dev/gqlls/internal/parser/js"
	"bennypowers.dev/gqlls/internal/position"
	"bennypowers.dev/gqlls/internal/schema"
	"bennypowers.dev/gqlls/internal/template"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	errorColor = color.New(color.FgRed, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	okColor    = color.New(color.FgGreen)
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] <file>...",
	Short: "Validate GraphQL documents against a schema",
	Long: `Validate GraphQL documents against a schema. Accepts standalone GraphQL
files as well as JavaScript/TypeScript sources, in which tagged template
literals are extracted and checked.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runValidate,
}

func init() {
	validateCmd.Flags().String("schema", "", "path to the SDL schema file (default: auto-discover)")
	validateCmd.Flags().StringSlice("tag", []string{"gql", "graphql"}, "template tag names to analyze")
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaPath, err := cmd.Flags().GetString("schema")
	if err != nil {
		return err
	}
	tags, err := cmd.Flags().GetStringSlice("tag")
	if err != nil {
		return err
	}

	if schemaPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		discovered := schema.Discover(cwd)
		if discovered == "" {
			return fmt.Errorf("no schema found: pass --schema or add a schema.graphql to the workspace")
		}
		schemaPath = filepath.Join(cwd, discovered)
		fmt.Printf("Using schema %s\n", schemaPath)
	}

	registry := schema.NewRegistry()
	if err := registry.LoadFile(schemaPath); err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	condition := template.TagCondition{Names: tags}

	totalErrors := 0
	totalWarnings := 0
	for _, path := range args {
		errors, warnings, err := validateFile(path, registry, condition)
		if err != nil {
			return err
		}
		totalErrors += errors
		totalWarnings += warnings
	}

	if totalErrors > 0 {
		return fmt.Errorf("%d error(s), %d warning(s)", totalErrors, totalWarnings)
	}
	if totalWarnings > 0 {
		warnColor.Printf("OK with %d warning(s)\n", totalWarnings)
	} else {
		okColor.Println("OK")
	}
	return nil
}

// validateFile checks one file and prints its findings. GraphQL files are
// validated whole; script files are scanned for matching template literals.
func validateFile(path string, registry *schema.Registry, condition template.TagCondition) (errors, warnings int, err error) {
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return 0, 0, readErr
	}
	text := string(data)

	switch filepath.Ext(path) {
	case ".graphql", ".graphqls", ".gql":
		for _, finding := range graphql.Diagnose(text, registry.Schema()) {
			printFinding(path, text, finding)
			if finding.Severity == graphql.SeverityError {
				errors++
			} else {
				warnings++
			}
		}
		return errors, warnings, nil
	}

	parser := js.AcquireParser()
	defer js.ReleaseParser(parser)
	file := parser.Parse(path, text)

	for _, node := range file.Templates {
		if !template.IsTagged(node, condition) {
			continue
		}

		info, ok := template.Resolve(node, file)
		if !ok {
			point := position.OffsetToPoint(text, node.Start)
			warnColor.Printf("%s:%d:%d: warning: ", path, point.Line+1, point.Character+1)
			fmt.Println("skipped: dynamic expressions are too complex to analyze")
			warnings++
			continue
		}

		for _, finding := range graphql.Diagnose(info.CombinedText, registry.Schema()) {
			outer, _, convErr := info.InnerToOuter(finding.Start)
			if convErr != nil {
				outer = node.Start
			}
			printFinding(path, text, graphql.Diagnostic{
				Start:    outer,
				End:      outer,
				Severity: finding.Severity,
				Code:     finding.Code,
				Message:  finding.Message,
			})
			if finding.Severity == graphql.SeverityError {
				errors++
			} else {
				warnings++
			}
		}
	}

	return errors, warnings, nil
}

func printFinding(path, text string, finding graphql.Diagnostic) {
	point := position.OffsetToPoint(text, finding.Start)
	c := errorColor
	label := "error"
	if finding.Severity != graphql.SeverityError {
		c = warnColor
		label = "warning"
	}
	c.Printf("%s:%d:%d: %s: ", path, point.Line+1, point.Character+1, label)
	if finding.Code != "" {
		fmt.Printf("%s [%s]\n", finding.Message, finding.Code)
	} else {
		fmt.Println(finding.Message)
	}
}
