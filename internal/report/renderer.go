package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"

	"github.com/fakeyudi/timetrack/internal/duration"
)

// Renderer serializes a Report to bytes.
type Renderer interface {
	Render(r *Report) ([]byte, error)
}

// RendererFor returns the renderer registered for format. An empty format
// selects text.
func RendererFor(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "yaml", "yml":
		return &YAMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want text, markdown, json or yaml)", format)
	}
}

// JSONRenderer renders a Report as indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(rep *Report) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(rep, "", "  ")
}

// YAMLRenderer renders a Report as YAML.
type YAMLRenderer struct{}

func (r *YAMLRenderer) Render(rep *Report) ([]byte, error) {
	return yaml.Marshal(rep)
}

// TextRenderer renders a Report as aligned plain-text tables.
type TextRenderer struct{}

func (r *TextRenderer) Render(rep *Report) ([]byte, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Report generated %s\n\n", rep.GeneratedAt.Local().Format("2006-01-02 15:04:05"))
	if len(rep.Activities) == 0 {
		sb.WriteString("No activities.\n")
	} else {
		sb.WriteString(ActivityTable(rep))
	}
	sb.WriteString("\n")
	if len(rep.Intervals) == 0 {
		sb.WriteString("No intervals recorded.\n")
	} else {
		sb.WriteString(IntervalTable(rep))
	}
	return []byte(sb.String()), nil
}

// MarkdownRenderer renders a Report as human-readable Markdown.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(rep *Report) ([]byte, error) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Time report: %s\n\n", rep.GeneratedAt.Local().Format("2006-01-02 15:04:05 MST"))

	// ## Activities
	sb.WriteString("## Activities\n\n")
	if len(rep.Activities) == 0 {
		sb.WriteString("_No activities._\n")
	} else {
		sb.WriteString("| Activity | Active | Latest | Total | Intervals |\n")
		sb.WriteString("|----------|--------|--------|-------|-----------|\n")
		for _, a := range rep.Activities {
			active := "no"
			if a.Active {
				active = "yes"
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %d |\n",
				escapeCell(a.Name), active, a.Window(), a.Total, a.IntervalCount)
		}
	}
	sb.WriteString("\n")

	// ## Intervals
	sb.WriteString("## Intervals\n\n")
	if len(rep.Intervals) == 0 {
		sb.WriteString("_No intervals recorded._\n")
	} else {
		sb.WriteString("| Activity | Start | End | Elapsed |\n")
		sb.WriteString("|----------|-------|-----|---------|\n")
		for _, iv := range rep.Intervals {
			end := "in progress"
			if iv.End != nil {
				end = iv.End.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n",
				escapeCell(iv.Activity),
				iv.Start.Local().Format("2006-01-02 15:04"),
				end,
				formatSeconds(iv.ElapsedSeconds, rep.ShowSeconds),
			)
		}
	}
	sb.WriteString("\n")

	return []byte(sb.String()), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatSeconds(s int64, showSeconds bool) string {
	return duration.Format(time.Duration(s)*time.Second, showSeconds)
}
