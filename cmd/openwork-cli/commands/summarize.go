package commands

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"openwork-summarizer/lib/configutil"
	"openwork-summarizer/lib/scrapers/openwork"
	"openwork-summarizer/lib/summarizer"
	"openwork-summarizer/services/reviewreport"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Config carries credentials that should not live on the command line.
// Values resolve in order: flag, config.json5, environment.
type Config struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	GeminiAPIKey string `json:"gemini_api_key"`
}

var (
	companyID *string
	username  *string
	password  *string
	modelName *string
	lang      *string
	maxPages  *int
	outDir    *string
)

func init() {
	companyID = summarizeCmd.Flags().String("company-id", "", "Company ID to scrape. If omitted, you'll be prompted for it.")
	username = summarizeCmd.Flags().String("username", "", "OpenWork username. Falls back to config.json5 or OPENWORK_USERNAME.")
	password = summarizeCmd.Flags().String("password", "", "OpenWork password. Falls back to config.json5 or OPENWORK_PASSWORD.")
	modelName = summarizeCmd.Flags().String("model-name", summarizer.DefaultModel, "Model used for summarization.")
	lang = summarizeCmd.Flags().String("lang", "ja", fmt.Sprintf("Summary output language, one of %v.", summarizer.Languages()))
	maxPages = summarizeCmd.Flags().Int("max-pages", 12, "Maximum number of listing pages to scrape.")
	outDir = summarizeCmd.Flags().String("out", ".", "Directory under which reviews/ and summaries/ are written.")
	rootCmd.AddCommand(summarizeCmd)
}

func resolve(flagValue, configValue, envKey string) string {
	if flagValue != "" {
		return flagValue
	}
	if configValue != "" {
		return configValue
	}
	return os.Getenv(envKey)
}

func promptLine(prompt string) string {
	fmt.Print(prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize [--company-id <id>]",
	Short: "Scrapes a company's reviews and writes a structured summary for job seekers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		godotenv.Load()

		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read config: %w", err)
		}

		user := resolve(*username, cfg.Username, "OPENWORK_USERNAME")
		pass := resolve(*password, cfg.Password, "OPENWORK_PASSWORD")
		apiKey := resolve("", cfg.GeminiAPIKey, "GEMINI_API_KEY")
		if user == "" || pass == "" || apiKey == "" {
			return fmt.Errorf("missing required credentials (username, password, or API key)")
		}

		id := *companyID
		if id == "" {
			id = promptLine("Enter the company ID: ")
			if id == "" {
				return fmt.Errorf("company ID is required")
			}
		}

		scraper, err := openwork.NewClient(openwork.ClientOptions{})
		if err != nil {
			return fmt.Errorf("initialize scraper: %w", err)
		}
		if err := scraper.Login(ctx, user, pass); err != nil {
			return fmt.Errorf("login: %w", err)
		}

		llm, err := summarizer.NewClient(ctx, summarizer.ClientOptions{APIKey: apiKey})
		if err != nil {
			return fmt.Errorf("initialize summarizer: %w", err)
		}

		service := &reviewreport.Service{
			Scraper:    scraper,
			Summarizer: llm,
			OutputRoot: *outDir,
			ConfirmOverwrite: func(path string) bool {
				answer := promptLine(fmt.Sprintf("Summary file '%s' already exists. Regenerate? [y/N]: ", path))
				return strings.EqualFold(answer, "y")
			},
		}

		result, err := service.Run(ctx, reviewreport.RunRequest{
			CompanyID: id,
			Model:     *modelName,
			Lang:      *lang,
			MaxPages:  *maxPages,
		})
		if err != nil {
			return err
		}
		if result.Skipped {
			slog.Info("kept the existing summary")
			return nil
		}

		printRunReport(result)
		if result.Summary != "" {
			fmt.Printf("\n%s\n", result.Summary)
		}
		return nil
	},
}

func printRunReport(result reviewreport.RunResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendRows([]table.Row{
		{"Company", result.Company.Name},
		{"Pages fetched", result.PagesFetched},
		{"Reviews collected", result.ReviewCount},
		{"Stopped because", string(result.Stop)},
		{"Reviews file", result.ReviewsPath},
		{"Summary file", result.SummaryPath},
	})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
