package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/liftlog/pkg/daylog"
	"tableflip.dev/liftlog/pkg/timeutil"
)

// PrettyPrint writes human readable day logs. Out defaults to color.Output.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

// TitleWithCount prints the day heading followed by a faint entry count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Day prints one rendered day: a heading, then a table of rows or the
// placeholder.
func (pp *PrettyPrint) Day(v daylog.View) {
	title := v.Day
	if t, err := timeutil.ParseDay(v.Day); err == nil {
		title = t.Format("Monday, ") + v.Day
	}
	pp.TitleWithCount(title, len(v.Rows))

	if v.Placeholder != "" {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.out(), " %s\n\n", v.Placeholder)
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	e := color.New(color.FgHiCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	header := []interface{}{bold.Sprint("Name"), bold.Sprint("Weight"), bold.Sprint("Reps"), bold.Sprint("Sets")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)
	for _, row := range v.Rows {
		name := row.Name
		if name == "" {
			name = "-"
		}
		if row.Editing {
			name = e.Sprint(name)
		}
		cells := []interface{}{name, row.Weight, row.Reps, row.Sets}
		if pp.ShowID {
			cells = append([]interface{}{y.Sprint(row.ID)}, cells...)
		}
		tbl.AddRow(cells...)
	}
	first := 1
	if pp.ShowID {
		first = 2
	}
	for i := first; i < first+3; i++ {
		tbl.RightAlign(i)
	}

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Days prints a plain list of day keys.
func (pp *PrettyPrint) Days(days []string) {
	if len(days) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), " none")
		return
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(days, "\n"))
}
