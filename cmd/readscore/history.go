package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/readscore/internal/config"
	"github.com/nao1215/readscore/internal/database"
	"github.com/nao1215/readscore/internal/model"
)

// Constants for score direction.
const (
	directionHarder    = "harder"
	directionEasier    = "easier"
	directionUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command reads analyses stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [FILE]",
		Short: "Show stored analyses and how scores changed",
		Long: `History displays analyses saved by 'readscore score' and 'readscore batch'.

With FILE it lists every stored analysis of that document. --latest
re-renders the newest one, and --compare shows how the scores changed
between its two latest analyses. --digest finds every analysis of the same
text, whatever file it was read from.

Examples:
  # List all documents in the database
  readscore history --list-documents

  # List the analyses of one document
  readscore history essay.txt

  # Show the newest analysis of a document as JSON
  readscore history --latest --json essay.txt

  # Compare the latest two analyses of a document
  readscore history --compare essay.txt

  # Find copies of the same text
  readscore history --digest 3a98...

  # Re-render a stored analysis as Markdown
  readscore history --id 5 --markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-documents", "l", false,
		"List all documents in the database")
	cmd.Flags().Int64P("id", "i", 0,
		"Show the stored analysis with this ID")
	cmd.Flags().Bool("compare", false,
		"Compare the two latest analyses of FILE")
	cmd.Flags().Bool("latest", false,
		"Show the newest stored analysis of FILE")
	cmd.Flags().String("digest", "",
		"List analyses of the text with this SHA3-256 digest")

	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output in Markdown format")

	return cmd
}

// historyOptions holds the parsed flags of the history command.
type historyOptions struct {
	listDocuments bool
	id            int64
	compare       bool
	latest        bool
	digest        string
	path          string
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts, err := parseHistoryOptions(cmd, cfg, args)
	if err != nil {
		return err
	}

	// Validate before opening the database to avoid creating it needlessly
	if !opts.listDocuments && opts.id == 0 && opts.digest == "" && opts.path == "" {
		return errors.New("a document is required (use --list-documents to see stored documents)")
	}

	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no history available in %s (run 'readscore score' first): %w", cfg.DBDir, err)
	}
	defer db.Close()

	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	switch {
	case opts.listDocuments:
		return listDocuments(ctx, out, db)
	case opts.id > 0:
		return showAnalysis(ctx, out, db, cfg, opts.id)
	case opts.digest != "":
		return listByDigest(ctx, out, db, opts.digest)
	case opts.latest:
		return showLatest(ctx, out, db, cfg, opts.path)
	case opts.compare:
		return runComparison(ctx, out, db, cfg, opts.path)
	default:
		return listHistory(ctx, out, db, opts.path)
	}
}

// parseHistoryOptions reads the history flags into cfg and historyOptions.
func parseHistoryOptions(cmd *cobra.Command, cfg *config.Config, args []string) (historyOptions, error) {
	var opts historyOptions
	var err error

	if opts.listDocuments, err = cmd.Flags().GetBool("list-documents"); err != nil {
		return opts, err
	}
	if opts.id, err = cmd.Flags().GetInt64("id"); err != nil {
		return opts, err
	}
	if opts.compare, err = cmd.Flags().GetBool("compare"); err != nil {
		return opts, err
	}
	if opts.latest, err = cmd.Flags().GetBool("latest"); err != nil {
		return opts, err
	}
	if opts.digest, err = cmd.Flags().GetString("digest"); err != nil {
		return opts, err
	}
	opts.digest = strings.ToLower(strings.TrimSpace(opts.digest))
	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return opts, err
	}
	if cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown"); err != nil {
		return opts, err
	}
	if cfg.JSONReport && cfg.MarkdownReport {
		return opts, config.ErrConflictingReportFormats
	}
	if len(args) > 0 {
		opts.path = documentPath(args[0])
	}
	return opts, nil
}

// listDocuments lists all documents that have analyses in the database.
func listDocuments(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	docs, err := db.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents found in the database.")
		fmt.Fprintln(out, "\nUse 'readscore score <file>' to analyze a document.")
		return nil
	}

	fmt.Fprintf(out, "Analyzed documents (%d):\n\n", len(docs))
	for _, doc := range docs {
		fmt.Fprintf(out, "  • %s\n", doc)
	}
	fmt.Fprintln(out, "\nUse 'readscore history <file>' to see the analyses of a document.")

	return nil
}

// listHistory lists all analyses of one document.
func listHistory(ctx context.Context, out io.Writer, db *database.HistoryDB, path string) error {
	metas, err := db.GetHistoryWithMetadata(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(metas) == 0 {
		fmt.Fprintf(out, "No history found for %s\n", path)
		fmt.Fprintln(out, "\nUse 'readscore score' to analyze this document.")
		return nil
	}

	fmt.Fprintf(out, "History for %s (%d analyses):\n\n", path, len(metas))
	fmt.Fprintf(out, "  %-6s  %-20s  %-6s  %s\n", "ID", "Date", "Metric", "Mean Age")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))

	for _, meta := range metas {
		mean := "-"
		if meta.MeanDefined {
			mean = strconv.FormatFloat(meta.MeanAge, 'f', 2, 64)
		}
		fmt.Fprintf(out, "  %-6d  %-20s  %-6s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Selector,
			mean,
		)
	}

	if err := writeSameText(ctx, out, db, metas[0]); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nUse 'readscore history --id <id>' to show an analysis.")
	fmt.Fprintln(out, "Use 'readscore history --compare <file>' to compare the latest two analyses.")

	return nil
}

// writeSameText names other documents whose latest text matches latest.
func writeSameText(ctx context.Context, out io.Writer, db *database.HistoryDB, latest database.AnalysisMetadata) error {
	if latest.Digest == "" {
		return nil
	}
	matches, err := db.FindByDigest(ctx, latest.Digest)
	if err != nil {
		return fmt.Errorf("failed to find identical text: %w", err)
	}

	seen := map[string]bool{latest.Path: true}
	for _, m := range matches {
		if seen[m.Path] {
			continue
		}
		seen[m.Path] = true
		fmt.Fprintf(out, "\nSame text also analyzed as %s (#%d)", m.Path, m.ID)
	}
	if len(seen) > 1 {
		fmt.Fprintln(out)
	}
	return nil
}

// listByDigest lists every analysis of the text with the given digest.
func listByDigest(ctx context.Context, out io.Writer, db *database.HistoryDB, digest string) error {
	metas, err := db.FindByDigest(ctx, digest)
	if err != nil {
		return fmt.Errorf("failed to find digest: %w", err)
	}

	if len(metas) == 0 {
		fmt.Fprintf(out, "No analyses found for digest %s\n", digest)
		return nil
	}

	fmt.Fprintf(out, "Analyses of identical text (%d):\n\n", len(metas))
	fmt.Fprintf(out, "  %-6s  %-20s  %-6s  %s\n", "ID", "Date", "Metric", "Document")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	for _, meta := range metas {
		fmt.Fprintf(out, "  %-6d  %-20s  %-6s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Selector,
			meta.Path,
		)
	}
	return nil
}

// showLatest renders the newest stored analysis of path.
func showLatest(ctx context.Context, out io.Writer, db *database.HistoryDB, cfg *config.Config, path string) error {
	analysis, err := db.GetLatestAnalysis(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to get latest analysis: %w", err)
	}
	if analysis == nil {
		return fmt.Errorf("no analysis found for %s", path)
	}
	return renderStored(out, cfg, analysis)
}

// showAnalysis renders a stored analysis with the requested report format.
func showAnalysis(ctx context.Context, out io.Writer, db *database.HistoryDB, cfg *config.Config, id int64) error {
	analysis, err := db.GetAnalysisByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get analysis %d: %w", id, err)
	}
	if analysis == nil {
		return fmt.Errorf("analysis with ID %d not found", id)
	}
	return renderStored(out, cfg, analysis)
}

// renderStored writes a stored analysis to out.
func renderStored(out io.Writer, cfg *config.Config, analysis *model.Analysis) error {
	_, err := newReportWriter(cfg, &reportOutput{w: out, color: isTerminal(out)}, false).Write(analysis)
	return err
}

// ScoreChange is the change of one metric between two analyses.
type ScoreChange struct {
	// Metric is the metric token.
	Metric string `json:"metric"`

	// Previous and Current are the raw scores.
	Previous float64 `json:"previous"`
	Current  float64 `json:"current"`

	// Delta is Current - Previous.
	Delta float64 `json:"delta"`

	// PreviousAge and CurrentAge are nil when the score was out of range.
	PreviousAge *int `json:"previous_age"`
	CurrentAge  *int `json:"current_age"`
}

// Comparison holds the result of comparing two analyses of a document.
type Comparison struct {
	// Path is the compared document.
	Path string `json:"path"`

	// Previous and Current describe the compared analyses.
	Previous database.AnalysisMetadata `json:"previous"`
	Current  database.AnalysisMetadata `json:"current"`

	// TextChanged is true when the analyzed text differs.
	TextChanged bool `json:"text_changed"`

	// Changes holds one entry per metric present in both analyses.
	Changes []ScoreChange `json:"changes"`

	// MeanDelta is the change of the mean age, when both means are defined.
	MeanDelta *float64 `json:"mean_delta,omitempty"`

	// Direction summarizes whether the text became harder or easier to read.
	Direction string `json:"direction"`
}

// runComparison compares the two latest analyses of path.
func runComparison(ctx context.Context, out io.Writer, db *database.HistoryDB, cfg *config.Config, path string) error {
	metas, err := db.GetHistoryWithMetadata(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}
	if len(metas) < 2 {
		return fmt.Errorf("at least 2 analyses are required for comparison (found %d)", len(metas))
	}

	current, err := db.GetAnalysisByID(ctx, metas[0].ID)
	if err != nil {
		return fmt.Errorf("failed to get analysis %d: %w", metas[0].ID, err)
	}
	previous, err := db.GetAnalysisByID(ctx, metas[1].ID)
	if err != nil {
		return fmt.Errorf("failed to get analysis %d: %w", metas[1].ID, err)
	}
	if current == nil || previous == nil {
		return errors.New("analysis disappeared while comparing")
	}

	comparison := compareAnalyses(metas[1], previous, metas[0], current)

	switch {
	case cfg.JSONReport:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(comparison)
	case cfg.MarkdownReport:
		return writeComparisonMarkdown(out, comparison)
	default:
		writeComparisonText(out, comparison)
		return nil
	}
}

// compareAnalyses builds a Comparison from two stored analyses.
func compareAnalyses(prevMeta database.AnalysisMetadata, prev *model.Analysis, curMeta database.AnalysisMetadata, cur *model.Analysis) Comparison {
	c := Comparison{
		Path:        cur.Path,
		Previous:    prevMeta,
		Current:     curMeta,
		TextChanged: prev.Digest != cur.Digest,
		Changes:     make([]ScoreChange, 0, len(model.AllMetrics)),
		Direction:   directionUnchanged,
	}

	prevSummary, curSummary := prev.Summary(), cur.Summary()
	var total float64
	for _, m := range model.AllMetrics {
		p, okPrev := prevSummary.Result(m)
		q, okCur := curSummary.Result(m)
		if !okPrev || !okCur {
			continue
		}
		change := ScoreChange{
			Metric:   m.String(),
			Previous: p.Score,
			Current:  q.Score,
			Delta:    q.Score - p.Score,
		}
		if p.AgeDefined {
			age := p.Age
			change.PreviousAge = &age
		}
		if q.AgeDefined {
			age := q.Age
			change.CurrentAge = &age
		}
		total += change.Delta
		c.Changes = append(c.Changes, change)
	}

	if prev.MeanDefined && cur.MeanDefined {
		delta := cur.MeanAge - prev.MeanAge
		c.MeanDelta = &delta
		total = delta
	}

	switch {
	case total > 0:
		c.Direction = directionHarder
	case total < 0:
		c.Direction = directionEasier
	}
	return c
}

// formatAge renders an optional age.
func formatAge(age *int) string {
	if age == nil {
		return "n/a"
	}
	return strconv.Itoa(*age)
}

// writeComparisonText writes a comparison as plain text.
func writeComparisonText(out io.Writer, c Comparison) {
	fmt.Fprintf(out, "Comparison for %s\n", c.Path)
	fmt.Fprintf(out, "  Previous: #%d (%s)\n", c.Previous.ID, c.Previous.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Current:  #%d (%s)\n", c.Current.ID, c.Current.Timestamp.Format("2006-01-02 15:04:05"))
	if !c.TextChanged {
		fmt.Fprintln(out, "  The text has not changed.")
	}
	fmt.Fprintln(out)

	if len(c.Changes) == 0 {
		fmt.Fprintln(out, "No metric was computed in both analyses.")
		return
	}

	for _, ch := range c.Changes {
		fmt.Fprintf(out, "  %-5s %.2f -> %.2f (%+.2f), age %s -> %s\n",
			ch.Metric, ch.Previous, ch.Current, ch.Delta,
			formatAge(ch.PreviousAge), formatAge(ch.CurrentAge))
	}
	if c.MeanDelta != nil {
		fmt.Fprintf(out, "\n  Mean age: %.2f -> %.2f (%+.2f)\n",
			c.Previous.MeanAge, c.Current.MeanAge, *c.MeanDelta)
	}
	fmt.Fprintf(out, "\nOverall: %s\n", c.Direction)
}

// writeComparisonMarkdown writes a comparison as Markdown.
func writeComparisonMarkdown(out io.Writer, c Comparison) error {
	md := markdown.NewMarkdown(out)

	md.H1("Readability Comparison")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"", "ID", "Date"},
		Rows: [][]string{
			{"Previous", strconv.FormatInt(c.Previous.ID, 10), c.Previous.Timestamp.Format("2006-01-02 15:04:05")},
			{"Current", strconv.FormatInt(c.Current.ID, 10), c.Current.Timestamp.Format("2006-01-02 15:04:05")},
		},
	})
	md.PlainText("")

	rows := make([][]string, 0, len(c.Changes))
	for _, ch := range c.Changes {
		rows = append(rows, []string{
			ch.Metric,
			strconv.FormatFloat(ch.Previous, 'f', 2, 64),
			strconv.FormatFloat(ch.Current, 'f', 2, 64),
			fmt.Sprintf("%+.2f", ch.Delta),
			formatAge(ch.PreviousAge) + " → " + formatAge(ch.CurrentAge),
		})
	}
	md.H2("Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Previous", "Current", "Change", "Reader Age"},
		Rows:   rows,
	})
	md.PlainText("")

	switch c.Direction {
	case directionHarder:
		md.Warningf("The text became harder to read (%s).", c.Path)
	case directionEasier:
		md.Tip("The text became easier to read.")
	default:
		md.Note("Readability is unchanged.")
	}

	return md.Build()
}
