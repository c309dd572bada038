package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/etnz/forex"
	"github.com/etnz/forex/date"
	"github.com/etnz/forex/logger"
	"github.com/etnz/forex/renderer"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// reportTask is a report to publish, and the data of its front matter.
type reportTask struct {
	Period date.Period
	Range  date.Range
	Name   string
}

type publishCmd struct {
	outputDir      string
	frontMatterTpl string
}

func (*publishCmd) Name() string     { return "publish" }
func (*publishCmd) Synopsis() string { return "generate the reports of every past period" }
func (*publishCmd) Usage() string {
	return `fx publish [-o <dir>] [-frontmatter <file>]

  Generates the report of every day, week, month and year since the first
  record, and saves them to <dir>/<period>/<name>.md. The front matter
  template receives the Period, the Range and the Name of each report.
`
}

func (c *publishCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputDir, "o", "reports", "Root directory for the generated reports")
	f.StringVar(&c.frontMatterTpl, "frontmatter", "", "Path to a Go template file for the report front matter")
}

func (c *publishCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var frontMatter *template.Template
	if c.frontMatterTpl != "" {
		var err error
		if frontMatter, err = template.ParseFiles(c.frontMatterTpl); err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse front matter template: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}

	history := ledger.Transactions()
	tasks := generateTasks(firstDay(history), date.Today())
	if len(tasks) == 0 {
		fmt.Fprintln(stdout, "Ledger is empty, nothing to publish.")
		return subcommands.ExitSuccess
	}

	log := logger.Named(appLogger(), "publish")
	acc := accounting(settings)
	for _, task := range tasks {
		r := forex.NewReport(history, forex.ReportOptions{Range: task.Range})
		md := renderer.RenderReport(r, acc, true)
		if frontMatter != nil {
			var fm bytes.Buffer
			if err := frontMatter.Execute(&fm, task); err != nil {
				fmt.Fprintf(os.Stderr, "failed to render front matter for %s: %v\n", task.Name, err)
				return subcommands.ExitFailure
			}
			md = fm.String() + "\n" + md
		}

		path := filepath.Join(c.outputDir, task.Period.String(), task.Name+".md")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create output directory for %s: %v\n", path, err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(path, []byte(md), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", path, err)
			return subcommands.ExitFailure
		}
		log.Debug("report generated", zap.String("file", path))
	}
	fmt.Fprintf(stdout, "Published %d reports in %s.\n", len(tasks), c.outputDir)
	return subcommands.ExitSuccess
}

// firstDay returns the day of the oldest well-formed record, or the zero date.
func firstDay(history []forex.Transaction) date.Date {
	var first date.Date
	for _, tx := range history {
		if tx.Malformed() {
			continue
		}
		if d := tx.Day(); first.IsZero() || d.Before(first) {
			first = d
		}
	}
	return first
}

// generateTasks returns the reports of every period from start's to end's.
func generateTasks(start, end date.Date) []reportTask {
	if start.IsZero() {
		return nil
	}
	var tasks []reportTask
	for _, p := range []date.Period{date.Daily, date.Weekly, date.Monthly, date.Yearly} {
		for r := p.Range(start); !r.From.After(end); r = p.Range(r.To.Add(1)) {
			tasks = append(tasks, reportTask{Period: p, Range: r, Name: periodName(p, r.From)})
		}
	}
	return tasks
}

// periodName identifies the period p starting on from.
func periodName(p date.Period, from date.Date) string {
	switch p {
	case date.Weekly:
		y, w := from.Time().ISOWeek()
		return fmt.Sprintf("%d-W%02d", y, w)
	case date.Monthly:
		return from.Format("2006-01")
	case date.Yearly:
		return from.Format("2006")
	default:
		return from.String()
	}
}
