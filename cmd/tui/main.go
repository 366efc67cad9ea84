package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"codeberg.org/lessonplanner/server/internal/logger"
	"codeberg.org/lessonplanner/server/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
)

func main() {
	grade := flag.String("grade", "", "grade level (non-interactive mode)")
	topic := flag.String("topic", "", "lesson topic (non-interactive mode)")
	flag.Parse()

	// the TUI owns the terminal
	logger.SetOutput(io.Discard, slog.LevelError)

	endpoint := os.Getenv("LESSONPLANNER_API_ENDPOINT")
	token := os.Getenv("LESSONPLANNER_API_KEY")

	if *grade != "" || *topic != "" || !term.IsTerminal(os.Stdout.Fd()) {
		if err := printLesson(endpoint, token, *grade, *topic); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		return
	}

	p := tea.NewProgram(tui.NewApp(endpoint, token), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running lesson planner: %v\n", err)
		os.Exit(1)
	}
}

// one-shot generation for scripts and pipes
func printLesson(endpoint, token, grade, topic string) error {
	if grade == "" || topic == "" || token == "" {
		return fmt.Errorf("-grade, -topic and LESSONPLANNER_API_KEY are required outside a terminal")
	}

	resp, err := tui.NewLessonClient(endpoint, token).Generate(context.Background(), grade, topic)
	if err != nil {
		return err
	}

	markdown := tui.LessonMarkdown(resp, grade, topic)

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(markdown)
		return nil
	}

	width, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width = 80
	}

	out, err := tui.RenderMarkdown(markdown, width, "")
	if err != nil {
		return err
	}

	fmt.Print(out)

	return nil
}
