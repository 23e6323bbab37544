package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// startSpinner shows msg with a spinner on w when w is a terminal and returns
// the function that stops it.
func startSpinner(w io.Writer, msg string) func() {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

func comparingMessage(name1, name2 string) string {
	return "Comparing '" + name1 + "' vs '" + name2 + "'..."
}
