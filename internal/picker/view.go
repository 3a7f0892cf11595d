package picker

import (
	"fmt"
	"strings"

	"github.com/timvw/cpick/internal/colorspace"
	"github.com/timvw/cpick/internal/history"
)

// valueGroups orders the representations on screen.
var valueGroups = []struct {
	name  string
	kinds []colorspace.Kind
}{
	{"Web", []colorspace.Kind{colorspace.KindHex, colorspace.KindRGB}},
	{"HSx", []colorspace.Kind{colorspace.KindHSL, colorspace.KindHSV, colorspace.KindHSI}},
	{"Print", []colorspace.Kind{colorspace.KindCMYK}},
	{"Advanced", []colorspace.Kind{colorspace.KindLab, colorspace.KindLCh, colorspace.KindXYZ, colorspace.KindYCbCr}},
}

// copyKey is the key that copies kind: 1..9 for the first nine, 0 for the tenth.
func copyKey(k colorspace.Kind) string {
	if k == colorspace.KindXYZ {
		return "0"
	}
	return fmt.Sprintf("%d", int(k)+1)
}

func (m *pickerModel) View() string {
	var b strings.Builder

	m.viewHeader(&b)
	m.viewValues(&b)

	switch m.mode {
	case modePath:
		m.viewPathPrompt(&b)
	case modeConfirmClear:
		b.WriteString("\n")
		b.WriteString(m.styles.err.Render(fmt.Sprintf("  Clear all %d history entries? (y/n)", m.store.Len())))
		b.WriteString("\n")
	default:
		m.viewHistory(&b)
	}

	m.viewFooter(&b)
	return b.String()
}

func (m *pickerModel) viewHeader(b *strings.Builder) {
	title := m.styles.title
	if m.frame.Frozen {
		title = m.styles.frozen
	}
	b.WriteString(title.Render(m.frame.Title))
	if m.prefs.Topmost {
		b.WriteString("  ")
		b.WriteString(m.styles.dim.Render("[on top]"))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.header.Render(strings.Repeat("─", m.ruleWidth())))
	b.WriteString("\n")

	hex := m.frame.Values.Primary()
	block := strings.Repeat(" ", 14)
	b.WriteString("  " + swatch(hex, block) + "\n")
	b.WriteString("  " + swatch(hex, fmt.Sprintf("   %-11s", hex)) + "  " + m.styles.value.Render(m.frame.Sample.String()) + "\n")
	b.WriteString("  " + swatch(hex, block) + "\n\n")
}

func (m *pickerModel) viewValues(b *strings.Builder) {
	for _, g := range valueGroups {
		b.WriteString("  " + m.styles.group.Render(g.name) + "\n")
		for _, k := range g.kinds {
			fmt.Fprintf(b, "    %s %s %s\n",
				m.styles.hintKey.Render(copyKey(k)),
				m.styles.label.Render(fmt.Sprintf("%-9s", k.String())),
				m.styles.value.Render(m.frame.Values.Get(k)))
		}
	}
}

func (m *pickerModel) viewHistory(b *strings.Builder) {
	entries := m.store.Entries()
	b.WriteString("\n")
	b.WriteString(m.styles.group.Render(fmt.Sprintf("  History (%d/%d)", len(entries), history.Capacity)))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(m.styles.dim.Render("  No colours yet. Press c to copy the current colour."))
		b.WriteString("\n")
		return
	}

	// Keep the cursor visible when the list is taller than the terminal.
	rows := len(entries)
	if avail := m.height - 24; m.height > 0 && avail > 3 && rows > avail {
		rows = avail
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < start+rows && i < len(entries); i++ {
		e := entries[i]
		line := fmt.Sprintf(" %-8s %s", e.Hex, e.Value)
		if i == m.cursor {
			b.WriteString("  " + swatch(e.Hex, "  ") + m.styles.selected.Render("> "+line))
		} else {
			b.WriteString("  " + swatch(e.Hex, "  ") + "  " + m.styles.value.Render(line))
		}
		b.WriteString("\n")
	}
}

func (m *pickerModel) viewPathPrompt(b *strings.Builder) {
	verb := "Save palette to"
	if m.pathAction == pathLoad {
		verb = "Load palette from"
	}
	b.WriteString("\n")
	b.WriteString(m.styles.group.Render("  " + verb))
	b.WriteString("\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render("  Enter=confirm  Esc=cancel"))
	b.WriteString("\n")
}

func (m *pickerModel) viewFooter(b *strings.Builder) {
	b.WriteString("\n")
	if m.message != "" {
		style := m.styles.ok
		if m.msgIsErr {
			style = m.styles.err
		}
		b.WriteString("  " + style.Render(m.message) + "\n")
	}
	if m.mode != modeMain {
		return
	}
	hints := []struct{ key, desc string }{
		{"space", "freeze"},
		{"c", "copy hex"},
		{"1-0", "copy value"},
		{"enter", "copy entry"},
		{"d", "delete"},
		{"x", "clear"},
		{"s", "save"},
		{"o", "load"},
		{"t", "on top"},
		{"q", "quit"},
	}
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = m.styles.hintKey.Render(h.key) + "=" + m.styles.hintDesc.Render(h.desc)
	}
	b.WriteString("  " + strings.Join(parts, "  ") + "\n")
}

func (m *pickerModel) ruleWidth() int {
	if m.width > 4 && m.width < 60 {
		return m.width - 2
	}
	return 58
}
