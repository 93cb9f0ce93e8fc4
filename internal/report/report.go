// Package report renders the analysis result as a self-contained dark-mode
// HTML dashboard. The output has no runtime dependencies; the only script
// is the tab switcher.
package report

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/trendhawk/trendhawk/pkg/trendhawk/analyze"
)

//go:embed dashboard.html.tmpl
var dashboardTmpl string

var tmpl = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"trunc": func(n int, s string) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n])
	},
	"f2":   func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"join": strings.Join,
	"velClass": func(label string) string {
		switch label {
		case analyze.LabelExploding:
			return "vel-exploding"
		case analyze.LabelRising:
			return "vel-rising"
		case analyze.LabelStable:
			return "vel-stable"
		case analyze.LabelDeclining:
			return "vel-declining"
		case analyze.LabelNew:
			return "vel-new"
		}
		return ""
	},
}).Parse(dashboardTmpl))

// page carries the result plus the few derived values the template needs.
type page struct {
	analyze.Result
	Updated  string
	Rising   int
	DataJSON template.JS
}

func (p page) TopGaps() []analyze.Gap       { return p.Gaps[:minInt(len(p.Gaps), 25)] }
func (p page) TopNiches() []analyze.Niche   { return p.Niches[:minInt(len(p.Niches), 25)] }
func (p page) TopBridges() []analyze.Bridge { return p.Bridges[:minInt(len(p.Bridges), 25)] }
func (p page) TopVoids() []analyze.Void     { return p.Voids[:minInt(len(p.Voids), 15)] }

func (p page) TopVelocity() []analyze.VelocityItem {
	return p.Velocity[:minInt(len(p.Velocity), 25)]
}

func (p page) TopRelevant() []analyze.RelevantItem {
	return p.Relevant[:minInt(len(p.Relevant), 20)]
}

// Render writes the dashboard HTML for res to w.
func Render(w io.Writer, res analyze.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	rising := 0
	for _, v := range res.Velocity {
		if v.Label == analyze.LabelExploding || v.Label == analyze.LabelRising {
			rising++
		}
	}

	updated := "N/A"
	if !res.Timestamp.IsZero() {
		updated = res.Timestamp.UTC().Format("2006-01-02 15:04:05")
	}

	p := page{
		Result:   res,
		Updated:  updated,
		Rising:   rising,
		DataJSON: template.JS(raw),
	}
	if err := tmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// WriteFile renders the dashboard to dir/index.html, creating dir if
// needed.
func WriteFile(dir string, res analyze.Result) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create docs dir: %w", err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, res); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write dashboard: %w", err)
	}
	return path, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
