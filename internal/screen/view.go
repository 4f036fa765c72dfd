package screen

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/foodie/internal/ui"
)

func (m Model) View() string {
	t := ui.Current()
	s := m.opt.Composer.Snapshot()
	price := m.opt.Price.Format

	var b strings.Builder
	if !s.Loaded {
		if m.loading {
			fmt.Fprintf(&b, "%s Loading dish...\n", m.spin.View())
		} else {
			b.WriteString(t.Muted.Render("Nothing to show.") + "\n")
		}
		b.WriteString(m.statusLine())
		b.WriteString("\n" + m.help.View(m.keys))
		return ui.PanelString(b.String())
	}

	heart := t.Muted.Render(t.FavoriteOff)
	if s.Favorite {
		heart = t.Error.Render(t.FavoriteOn)
	}
	item := s.Item
	fmt.Fprintf(&b, "%s  %s\n", t.Title.Render(item.Name), heart)
	if item.Description != "" {
		b.WriteString(t.Muted.Render(item.Description) + "\n")
	}
	if item.ImageURL != "" {
		b.WriteString(t.Muted.Render(item.ImageURL) + "\n")
	}
	b.WriteString(t.Price.Render(price(item.Price)) + "\n\n")

	b.WriteString(t.Title.Render("Add-ons") + "\n")
	if len(item.AddOns) == 0 {
		b.WriteString(t.Muted.Render("(none)") + "\n")
	}
	for i, a := range item.AddOns {
		prefix := "  "
		name := a.Name
		if i == m.cursor {
			prefix = t.Cursor
			name = t.Selected.Render(name)
		}
		fmt.Fprintf(&b, "%s%s %s  %s\n", prefix, name,
			t.Muted.Render(price(a.UnitPrice)), stepper(a.Quantity))
	}

	b.WriteString("\n" + t.Title.Render("Order total") + "\n")
	fmt.Fprintf(&b, "%s  %s\n", t.Price.Render(price(s.Total)), stepper(s.BaseQuantity))

	if m.loading {
		b.WriteString(m.spin.View() + " Reloading...\n")
	}
	b.WriteString(m.statusLine())
	b.WriteString("\n" + m.help.View(m.keys))
	return ui.PanelString(b.String())
}

func (m Model) statusLine() string {
	if m.status == "" {
		return ""
	}
	t := ui.Current()
	if m.statusErr {
		return t.Error.Render(t.SymFail+" "+m.status) + "\n"
	}
	return t.Success.Render(m.status) + "\n"
}

func stepper(n int) string {
	t := ui.Current()
	return fmt.Sprintf("%s %d %s", t.Muted.Render(t.Minus), n, t.Accent.Render(t.Plus))
}
