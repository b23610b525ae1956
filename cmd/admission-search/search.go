package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"admission-workers/internal/app"
	"admission-workers/internal/common/config"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/documents"
	"admission-workers/internal/export"
	"admission-workers/internal/models"
	"admission-workers/internal/scoring"
	"admission-workers/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search institutions offering a program and rank them",
	Long: "Resolves the program, searches with the given location filter, broadens through related codes " +
		"and synonyms when results are thin, then estimates acceptance and two-year cost for every institution.",
	Example: "  admission-search search --program \"data science\" --state TX --budget 60000 --cgpa 3.6 --gre 318 --ielts 7.5 --doc sop.pdf",
	RunE:    runSearch,
}

type searchOptions struct {
	Program string
	State   string
	City    string
	Zip     string
	Radius  string

	Budget float64
	CGPA   float64
	GRE    int
	IELTS  float64

	DocPath string
	DocKind string

	Limit   int
	CSVPath string
	Output  string
}

var opts searchOptions

func init() {
	f := searchCmd.Flags()
	f.StringVarP(&opts.Program, "program", "p", "", "Program or course name (required)")
	f.StringVar(&opts.State, "state", "", "Two-letter state code")
	f.StringVar(&opts.City, "city", "", "City (requires --state)")
	f.StringVar(&opts.Zip, "zip", "", "ZIP code (requires --radius)")
	f.StringVar(&opts.Radius, "radius", "", "Distance from --zip: 10mi, 25mi, 50mi or 100mi")
	f.Float64Var(&opts.Budget, "budget", 0, "Two-year budget in USD")
	f.Float64Var(&opts.CGPA, "cgpa", 0, "Cumulative GPA on a 4.0 scale")
	f.IntVar(&opts.GRE, "gre", 0, "GRE total (260-340), 0 when not taken")
	f.Float64Var(&opts.IELTS, "ielts", 0, "IELTS band (0-9), 0 when not taken")
	f.StringVar(&opts.DocPath, "doc", "", "Statement of purpose or recommendation letter (.pdf or .txt)")
	f.StringVar(&opts.DocKind, "doc-kind", "", "Document kind: sop or lor (detected when empty)")
	f.IntVar(&opts.Limit, "limit", 0, "Show only the top N institutions (0 shows all)")
	f.StringVar(&opts.CSVPath, "csv", "", "Also write the ranked table to this CSV file")
	f.StringVarP(&opts.Output, "output", "o", "table", "Output format: table or json")

	if err := searchCmd.MarkFlagRequired("program"); err != nil {
		panic(fmt.Sprintf("failed to mark program flag as required: %v", err))
	}

	rootCmd.AddCommand(searchCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if opts.Output != "table" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q", opts.Output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zapLog, err := logger.Build(logger.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, Output: "stderr"})
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	deps, err := app.Connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.Close()

	searcher, err := app.NewSearcher(cfg, deps, log)
	if err != nil {
		return err
	}

	var doc []byte
	if opts.DocPath != "" {
		doc, err = os.ReadFile(opts.DocPath)
		if err != nil {
			return fmt.Errorf("failed to read document %s: %w", opts.DocPath, err)
		}
	}

	rep, err := recommend(ctx, app.NewEngine(cfg, searcher, log), app.NewScorer(cfg, log), opts, doc)
	if err != nil {
		return err
	}

	if opts.CSVPath != "" {
		if err := writeCSVFile(opts.CSVPath, rep.Rows); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(rep.Rows), opts.CSVPath)
	}

	out := cmd.OutOrStdout()
	if opts.Output == "json" {
		return writeJSON(out, rep)
	}
	return writeTable(out, rep)
}

type report struct {
	SearchID      string              `json:"searchId"`
	Query         models.ProgramQuery `json:"query"`
	Stats         search.Stats        `json:"stats"`
	MatchScore    float64             `json:"matchScore"`
	DocumentScore float64             `json:"documentScore"`
	Document      *documents.Result   `json:"document,omitempty"`
	Rows          []models.ScoredRow  `json:"rows"`
	Message       string              `json:"message,omitempty"`
}

// recommend runs search, document scoring and ranking for one applicant.
func recommend(ctx context.Context, engine *search.Engine, scorer *documents.Scorer, o searchOptions, doc []byte) (*report, error) {
	if o.Budget < 0 {
		return nil, errors.New("budget must not be negative")
	}

	profile := models.ApplicantProfile{CGPA: o.CGPA, DocumentScore: models.DefaultDocumentScore}
	if o.GRE > 0 {
		gre := o.GRE
		profile.GRE = &gre
	}
	if o.IELTS > 0 {
		ielts := o.IELTS
		profile.IELTS = &ielts
	}

	rep := &report{}
	if len(doc) > 0 {
		res := scorer.ScoreOrDefault(ctx, doc, filepath.Base(o.DocPath), documents.ParseKind(o.DocKind))
		profile.DocumentScore = res.Score
		rep.Document = &res
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	outcome, err := engine.Run(ctx, search.Request{
		ProgramName: o.Program,
		Location: models.LocationFilter{
			State:   o.State,
			City:    o.City,
			ZipCode: o.Zip,
			Radius:  o.Radius,
		},
	})
	if err != nil {
		return nil, err
	}

	rows := scoring.ScoreAll(outcome.Results, profile, o.Budget)
	scoring.Rank(rows)
	if o.Limit > 0 && len(rows) > o.Limit {
		rows = rows[:o.Limit]
	}

	rep.SearchID = outcome.SearchID
	rep.Query = outcome.Query
	rep.Stats = outcome.Stats
	rep.MatchScore = scoring.Match(profile)
	rep.DocumentScore = profile.DocumentScore
	rep.Rows = rows
	if len(rows) == 0 {
		rep.Message = export.EmptyMessage
	}
	return rep, nil
}

func writeCSVFile(path string, rows []models.ScoredRow) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := export.WriteCSV(f, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeJSON(w io.Writer, rep *report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func writeTable(w io.Writer, rep *report) error {
	if rep.Message != "" {
		_, err := fmt.Fprintln(w, rep.Message)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tINSTITUTION\tCITY\tSTATE\tTUITION\tLIVING\tBOOKS\tPER YEAR\tTWO YEAR\tBASELINE\tADMIT\tIN BUDGET")
	for i, d := range export.ToDisplayRows(rep.Rows) {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, d.Institution, d.City, d.State, d.Tuition, d.Living, d.Books,
			d.PerYear, d.TwoYear, d.Baseline, d.AdmitPercent, d.WithinBudget)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "\nProfile match %.2f, document score %.2f. Broadening: %s.\n",
		rep.MatchScore, rep.DocumentScore, rep.Stats.SatisfiedBy)
	_, err := fmt.Fprintf(w, "\n%s\n", export.Explanation)
	return err
}
