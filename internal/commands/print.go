package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"todos/internal/exitcode"
	"todos/internal/output"
	"todos/internal/task"
)

func init() {
	Register(&PrintCmd{})
}

// PrintCmd renders the task list as a printable PDF checklist.
type PrintCmd struct {
	out    string
	filter string
}

func (c *PrintCmd) Name() string      { return "print" }
func (c *PrintCmd) Aliases() []string { return nil }
func (c *PrintCmd) Synopsis() string  { return "Write tasks to a PDF checklist" }
func (c *PrintCmd) Usage() string {
	return "todos print [--out <file.pdf>] [--filter all|completed|active]"
}
func (c *PrintCmd) NeedsStore() bool { return true }
func (c *PrintCmd) NeedsAuth() bool  { return false }

func (c *PrintCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.out, "out", "todos.pdf", "")
	fs.StringVar(&c.out, "o", "todos.pdf", "")
	fs.StringVar(&c.filter, "filter", "all", "")
	fs.StringVar(&c.filter, "f", "all", "")
}

// SetOptions sets the output path and filter (for testing).
func (c *PrintCmd) SetOptions(out, filter string) {
	c.out = out
	c.filter = filter
}

func (c *PrintCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	filter, err := task.ParseFilter(c.filter)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks := filter.Apply(env.Store.Tasks())
	if err := WritePDF(c.out, tasks); err != nil {
		fmt.Fprintf(errOut, "error: failed to write pdf: %v\n", err)
		return exitcode.BackendError
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "wrote %d tasks to %s\n", len(tasks), c.out)
	}
	return exitcode.Success
}

// WritePDF writes tasks as an A4 checklist to path.
func WritePDF(path string, tasks task.Collection) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Tasks", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Tasks", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	if len(tasks) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "no tasks found", "", 1, "L", false, 0, "")
	}

	for _, t := range tasks {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(10, 8, "["+output.Mark(t)+"]", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 8, tr(output.NormalizeTitle(t.Title)), "", "L", false)

		if content := strings.TrimSpace(t.Content); content != "" {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(pdf.GetX() + 10)
			pdf.MultiCell(0, 5, tr(content), "", "L", false)
		}
		pdf.Ln(2)
	}

	return pdf.OutputFileAndClose(path)
}
