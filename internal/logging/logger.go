package logging

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Configure sets the default slog logger on out with colorized levels on interactive terminals.
func Configure(out *os.File, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(New(out, colorEnabled(out), level))
}

// New builds a text logger writing to out.
func New(out io.Writer, color bool, level slog.Leveler) *slog.Logger {
	if color {
		out = newColorizingWriter(out)
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

type colorizingWriter struct {
	out          io.Writer
	replacements [][2][]byte
}

func newColorizingWriter(out io.Writer) colorizingWriter {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI)

	levels := []struct {
		name  string
		color lipgloss.Color
	}{
		{"ERROR", lipgloss.Color("1")},
		{"WARN", lipgloss.Color("3")},
		{"INFO", lipgloss.Color("2")},
		{"DEBUG", lipgloss.Color("6")},
	}

	w := colorizingWriter{out: out}
	for _, lvl := range levels {
		styled := r.NewStyle().Foreground(lvl.color).Render(lvl.name)
		w.replacements = append(w.replacements, [2][]byte{
			[]byte("level=" + lvl.name),
			[]byte("level=" + styled),
		})
	}
	return w
}

func (w colorizingWriter) Write(p []byte) (int, error) {
	colored := p
	for _, r := range w.replacements {
		colored = bytes.ReplaceAll(colored, r[0], r[1])
	}

	if _, err := w.out.Write(colored); err != nil {
		return 0, err
	}
	return len(p), nil
}

func colorEnabled(f *os.File) bool {
	if os.Getenv("CLICOLOR_FORCE") == "1" {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}

	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
