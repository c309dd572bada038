package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
)

// stdout is where commands write their output.
var stdout io.Writer = os.Stdout

// printMarkdown renders markdown for the terminal. It falls back to the raw
// markdown if it cannot be rendered.
var printMarkdown = func(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	appLogger().Debug("cannot render markdown")
	fmt.Fprint(stdout, md)
}
