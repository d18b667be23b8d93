package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-review/internal/config"
	"github.com/jonathan/resume-review/internal/fetch"
	"github.com/jonathan/resume-review/internal/llm"
	"github.com/jonathan/resume-review/internal/observability"
	"github.com/jonathan/resume-review/internal/parser"
	"github.com/jonathan/resume-review/internal/prompts"
	"github.com/jonathan/resume-review/internal/schemas"
	"github.com/jonathan/resume-review/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume PDF against a job posting",
	Long: `Runs the AI review on a resume PDF and prints the feedback scores,
improvement suggestions and optimization questions.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath string
	analyzeResume     string
	analyzeJob        string
	analyzeJobURL     string
	analyzeCompany    string
	analyzeTitle      string
	analyzeAPIKey     string
	analyzeOut        string
	analyzeVerbose    bool
)

func init() {
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Path to resume PDF")
	analyzeCmd.Flags().StringVarP(&analyzeJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	analyzeCmd.Flags().StringVarP(&analyzeCompany, "company", "c", "", "Target company name")
	analyzeCmd.Flags().StringVarP(&analyzeTitle, "title", "t", "", "Target job title")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write the parsed resume model JSON to this path")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Config{
		Resume:      analyzeResume,
		Job:         analyzeJob,
		JobURL:      analyzeJobURL,
		CompanyName: analyzeCompany,
		JobTitle:    analyzeTitle,
		APIKey:      analyzeAPIKey,
	}
	if analyzeConfigPath != "" {
		loaded, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = cfg.MergeWithDefaults(*loaded)
	}
	if err := cfg.FromEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (--api-key or GEMINI_API_KEY)")
	}

	pdfBytes, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	jobDescription, err := resolveJobDescription(ctx, &cfg)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create AI client: %w", err)
	}
	defer func() { _ = client.Close() }()

	instructions := prompts.EnhancedAnalysisInstructions(cfg.JobTitle, jobDescription)
	raw, err := client.Feedback(ctx, pdfBytes, instructions)
	if err != nil {
		return fmt.Errorf("AI analysis failed: %w", err)
	}

	if analyzeVerbose {
		if err := schemas.ValidateEnhancedResponse(llm.CleanJSONBlock(raw)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: response failed schema validation: %v\n", err)
		}
	}

	model := parser.ParseAIResponse(raw, cfg.Resume, parser.JobContext{
		CompanyName:    cfg.CompanyName,
		JobTitle:       cfg.JobTitle,
		JobDescription: jobDescription,
	})

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintFeedback(feedbackFromRaw(raw))
	printer.PrintSuggestions(model.Optimization.PendingSuggestions)
	printer.PrintQuestions(parser.GenerateOptimizationQuestions(model, jobDescription))

	if analyzeOut != "" {
		data, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode model: %w", err)
		}
		if err := os.WriteFile(analyzeOut, data, 0644); err != nil {
			return fmt.Errorf("failed to write model: %w", err)
		}
		fmt.Printf("Model written to %s\n", analyzeOut)
	}

	return nil
}

// feedbackFromRaw decodes the feedback block of the AI response for display.
func feedbackFromRaw(raw string) *types.Feedback {
	var resp types.EnhancedAIResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &resp); err != nil {
		return nil
	}
	return &resp.Feedback
}

// resolveJobDescription reads the job posting from a file or fetches it from
// a URL, depending on which flag was provided.
func resolveJobDescription(ctx context.Context, cfg *config.Config) (string, error) {
	switch {
	case cfg.Job != "":
		data, err := os.ReadFile(cfg.Job)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(data), nil
	case cfg.JobURL != "":
		text, err := fetch.JobDescription(ctx, cfg.JobURL, nil)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return text, nil
	default:
		return "", nil
	}
}
