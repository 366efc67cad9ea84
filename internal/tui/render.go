package tui

import (
	"fmt"
	"strings"

	"codeberg.org/lessonplanner/server/internal/lesson"
	"github.com/charmbracelet/glamour"
)

var optionLetters = []string{"A", "B", "C", "D", "E", "F"}

// formats a lesson as markdown: plan, worksheet, then an answer key
func LessonMarkdown(resp *LessonResponse, grade, topic string) string {
	var b strings.Builder

	plan := resp.LessonPlan

	fmt.Fprintf(&b, "# %s\n\n", heading(grade, topic))
	fmt.Fprintf(&b, "_tier: %s | remaining: %s_\n\n", resp.Tier, resp.UsageRemaining)

	b.WriteString("## Objectives\n\n")
	writeList(&b, plan.Objectives)

	if len(plan.Materials) > 0 {
		b.WriteString("## Materials\n\n")
		writeList(&b, plan.Materials)
	}

	b.WriteString("## Activities\n\n")
	for i, activity := range plan.Activities {
		fmt.Fprintf(&b, "%d. %s\n", i+1, activity)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Assessment\n\n%s\n\n", plan.Assessment)

	b.WriteString("## Worksheet\n\n")
	if resp.Worksheet.Instructions != "" {
		fmt.Fprintf(&b, "%s\n\n", resp.Worksheet.Instructions)
	}

	for i, item := range resp.Worksheet.Items {
		fmt.Fprintf(&b, "**%d. %s**\n\n", i+1, item.Question)

		if item.Type == lesson.TypeMultipleChoice {
			for j, option := range item.Options {
				fmt.Fprintf(&b, "- %s) %s\n", letter(j), option)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Answer Key\n\n")
	for i, item := range resp.Worksheet.Items {
		fmt.Fprintf(&b, "%d. %s", i+1, item.Answer)
		if item.Explanation != "" {
			fmt.Fprintf(&b, " (%s)", item.Explanation)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renders markdown for the terminal, wrapped to width
func RenderMarkdown(markdown string, width int, style string) (string, error) {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style != "" {
		opts = append(opts, glamour.WithStandardStyle(style))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render lesson: %w", err)
	}

	return out, nil
}

func heading(grade, topic string) string {
	switch {
	case grade != "" && topic != "":
		return fmt.Sprintf("%s (%s)", topic, grade)
	case topic != "":
		return topic
	default:
		return "Lesson Plan"
	}
}

func writeList(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

func letter(i int) string {
	if i < len(optionLetters) {
		return optionLetters[i]
	}

	return fmt.Sprintf("%d", i+1)
}
