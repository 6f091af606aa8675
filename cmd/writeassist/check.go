package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"writeassist/internal/chunker"
	"writeassist/internal/domain"
	"writeassist/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print the annotated document with suggestions, readiness and plagiarism reports",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("compress", 0, "also print a compressed version with about this many words")
	checkCmd.Flags().Bool("paraphrase", false, "also print paraphrase variants")
}

var (
	kindColors = map[domain.Kind]*color.Color{
		domain.KindSpelling: color.New(color.FgRed, color.Underline),
		domain.KindGrammar:  color.New(color.FgBlue, color.Underline),
		domain.KindStyle:    color.New(color.FgMagenta, color.Underline),
		domain.KindClarity:  color.New(color.FgGreen, color.Underline),
	}
	bandColors = map[string]*color.Color{
		domain.BandGood: color.New(color.FgGreen),
		domain.BandFair: color.New(color.FgYellow),
		domain.BandPoor: color.New(color.FgRed),
	}
	heading = color.New(color.Bold)
	muted   = color.New(color.Faint)
)

// report collects everything check prints. Fields are filled concurrently,
// one goroutine per field.
type report struct {
	readiness  []domain.ReadinessDimension
	plagiarism domain.PlagiarismResult
	paraphrase *domain.ParaphraseResult
	compressed string
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	target, _ := cmd.Flags().GetInt("compress")
	withParaphrase, _ := cmd.Flags().GetBool("paraphrase")

	var rep report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rep.readiness, err = a.providers.Readiness.Score(gctx, a.text)
		return wrapProvider("readiness", err)
	})
	g.Go(func() error {
		var err error
		rep.plagiarism, err = a.providers.Plagiarism.Check(gctx, a.text)
		return wrapProvider("plagiarism", err)
	})
	if withParaphrase {
		g.Go(func() error {
			res, err := a.providers.Paraphraser.Paraphrase(gctx, a.text)
			rep.paraphrase = &res
			return wrapProvider("paraphrase", err)
		})
	}
	if target > 0 {
		g.Go(func() error {
			var err error
			rep.compressed, err = a.providers.Compressor.Compress(gctx, a.text, target)
			return wrapProvider("compress", err)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return printReport(cmd.OutOrStdout(), a.text, a.batch, rep)
}

func kindColor(k domain.Kind) *color.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return color.New(color.Underline)
}

func wrapProvider(op string, err error) error {
	if err == nil {
		return nil
	}
	return &domain.ProviderError{Op: op, Err: err}
}

func printReport(w io.Writer, text string, batch []domain.Suggestion, rep report) error {
	list := append([]domain.Suggestion(nil), batch...)
	domain.SortByStart(list)
	spans, err := render.Render(text, list)
	if err != nil {
		return err
	}

	heading.Fprintf(w, "Document (%d words)\n\n", chunker.WordCount(text))
	for _, sp := range spans {
		if sp.Annotated {
			kindColor(sp.Kind).Fprint(w, sp.Text)
			continue
		}
		fmt.Fprint(w, sp.Text)
	}
	fmt.Fprint(w, "\n\n")

	heading.Fprintf(w, "Suggestions (%d)\n", len(list))
	for _, sg := range list {
		kindColor(sg.Kind).Fprintf(w, "  #%d %-9s", sg.ID, sg.Kind)
		fmt.Fprintf(w, " %q → %q  [%d:%d]\n", sg.Original, sg.Replacement, sg.StartIndex, sg.EndIndex)
		muted.Fprintf(w, "      %s: %s\n", sg.Category, sg.Explanation)
	}

	overall := domain.OverallReadiness(rep.readiness)
	band := domain.ScoreBand(overall)
	fmt.Fprintln(w)
	heading.Fprint(w, "Submission readiness ")
	bandColors[band].Fprintf(w, "%d/100 (%s)\n", overall, band)
	for _, d := range rep.readiness {
		fmt.Fprintf(w, "  %-14s ", d.Name)
		bandColors[domain.ScoreBand(d.Score)].Fprintf(w, "%3d", d.Score)
		fmt.Fprintf(w, "  %s\n", d.Details)
	}

	fmt.Fprintln(w)
	heading.Fprintln(w, "Plagiarism & AI content")
	fmt.Fprintf(w, "  similarity %d%%, AI content %d%%\n", rep.plagiarism.SimilarityScore, rep.plagiarism.AIContentScore)
	for _, s := range rep.plagiarism.Sources {
		fmt.Fprintf(w, "  %3d%%  %s\n", s.Percentage, s.URL)
	}

	if p := rep.paraphrase; p != nil {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Paraphrase")
		fmt.Fprintf(w, "  Formal:   %s\n  Concise:  %s\n  Detailed: %s\n", p.Formal, p.Concise, p.Detailed)
	}
	if rep.compressed != "" {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Compressed")
		fmt.Fprintln(w, "  "+rep.compressed)
	}
	return nil
}
