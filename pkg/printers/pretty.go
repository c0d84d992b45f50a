package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/treedrag/pkg/app"
)

// PrettyPrint writes tree rows and drop results for humans, or as JSON.
type PrettyPrint struct {
	JSON bool
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// JSONValue writes v as a single line of JSON.
func (pp *PrettyPrint) JSONValue(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Tree prints rows as a table of path, flags and indented label. Rows whose
// path or label is in highlight are marked.
func (pp *PrettyPrint) Tree(rows []app.Row, highlight ...string) error {
	if pp.JSON {
		return pp.JSONValue(map[string]any{"rows": rows})
	}
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " empty\n\n")
		return nil
	}

	marked := make(map[string]struct{}, len(highlight))
	for _, h := range highlight {
		marked[h] = struct{}{}
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	group := color.New(color.FgHiCyan, color.Bold)
	moved := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Path"), bold.Sprint("Flags"), bold.Sprint("Label"))
	for _, r := range rows {
		label := strings.Repeat("  ", r.Depth-1) + r.Label
		switch {
		case hasKey(marked, r.Path), hasKey(marked, r.Label):
			label = moved.Sprint(label + " *")
		case r.Droppable:
			label = group.Sprint(label)
		}
		tbl.AddRow(r.Path, faint.Sprint(r.Flags), label)
	}
	tbl.RightAlign(0)

	_, err := fmt.Fprintln(pp.out(), tbl)
	return err
}

// Paths prints decoded payload paths next to the label each currently
// resolves to.
func (pp *PrettyPrint) Paths(paths []string, labels map[string]string) error {
	if pp.JSON {
		type entry struct {
			Path  string `json:"path"`
			Label string `json:"label,omitempty"`
		}
		out := make([]entry, 0, len(paths))
		for _, p := range paths {
			out = append(out, entry{Path: p, Label: labels[p]})
		}
		return pp.JSONValue(map[string]any{"paths": out})
	}

	missing := color.New(color.FgRed, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, p := range paths {
		label, ok := labels[p]
		if !ok {
			label = missing.Sprint("(not in tree)")
		}
		if p == "" {
			p = "(root)"
		}
		tbl.AddRow(p, label)
	}
	tbl.RightAlign(0)
	_, err := fmt.Fprintln(pp.out(), tbl)
	return err
}

// Dropped reports a drop result.
func (pp *PrettyPrint) Dropped(res app.DropResult) error {
	if pp.JSON {
		return pp.JSONValue(res)
	}
	c := color.New(color.FgGreen)
	noun := "items"
	if len(res.Moved) == 1 {
		noun = "item"
	}
	_, err := c.Fprintf(pp.out(), "moved %d %s to %s at row %d\n", len(res.Moved), noun, res.Target, res.Row)
	return err
}

func hasKey(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}
