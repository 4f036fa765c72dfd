// Package screen is the interactive item screen: it maps key presses to
// the order state and renders it.
package screen

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/foodie/internal/catalog"
	"github.com/idilsaglam/foodie/internal/order"
	"github.com/idilsaglam/foodie/internal/ui"
)

// Messages carrying remote outcomes back onto the event loop.
type (
	loadedMsg    order.Loaded
	favoriteMsg  order.FavoriteResult
	submittedMsg order.Submitted
)

// Options wires a screen to its state and collaborators.
type Options struct {
	ItemID    int
	Composer  *order.Composer
	Favorites *order.FavoriteSync
	Price     ui.PriceFormatter
	Timeout   time.Duration // per remote call
	Logger    *zap.Logger
}

// Model implements tea.Model for the item screen.
type Model struct {
	opt  Options
	keys keyMap
	help help.Model
	spin spinner.Model

	cursor     int
	loading    bool
	submitting bool

	status    string
	statusErr bool
	lastOrder *catalog.Ack
}

func New(opt Options) Model {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	if opt.Favorites == nil {
		opt.Favorites = order.NewFavoriteSync(opt.Composer)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Current().Accent
	return Model{
		opt:     opt,
		keys:    defaultKeys(),
		help:    help.New(),
		spin:    sp,
		loading: true,
	}
}

// LastOrder is the acknowledgement of the most recent accepted order.
func (m Model) LastOrder() (catalog.Ack, bool) {
	if m.lastOrder == nil {
		return catalog.Ack{}, false
	}
	return *m.lastOrder, true
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetch())
}

// fetch starts a load generation; the request runs off the loop.
func (m Model) fetch() tea.Cmd {
	run := m.opt.Composer.PrepareLoad(m.opt.ItemID)
	timeout := m.opt.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return loadedMsg(run(ctx))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		err := m.opt.Composer.ApplyLoad(order.Loaded(msg))
		if errors.Is(err, order.ErrStale) {
			return m, nil
		}
		m.loading = false
		if err != nil {
			m.setError(loadNotice(err))
			return m, nil
		}
		m.cursor = 0
		m.status, m.statusErr = "", false
		return m, nil

	case favoriteMsg:
		// Settle logs failures; favorite sync errors are never shown on screen
		_ = m.opt.Favorites.Settle(order.FavoriteResult(msg))
		return m, nil

	case submittedMsg:
		m.submitting = false
		ack, err := m.opt.Composer.SettleSubmit(order.Submitted(msg))
		if err != nil {
			m.setError(submitNotice(err))
			return m, nil
		}
		m.lastOrder = &ack
		m.status, m.statusErr = "Order placed", false
		if ack.ID != "" {
			m.status += " (#" + ack.ID + ")"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, k.Reload):
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.status, m.statusErr = "", false
		return m, tea.Batch(m.spin.Tick, m.fetch())
	}

	c := m.opt.Composer
	if _, loaded := c.Item(); !loaded {
		return m, nil
	}
	addOns := c.Ledger().AddOns()

	switch {
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, k.Down):
		if m.cursor < len(addOns)-1 {
			m.cursor++
		}
	case key.Matches(msg, k.AddOnInc):
		if m.cursor < len(addOns) {
			c.IncrementAddOn(addOns[m.cursor].ID)
		}
	case key.Matches(msg, k.AddOnDec):
		if m.cursor < len(addOns) {
			c.DecrementAddOn(addOns[m.cursor].ID)
		}
	case key.Matches(msg, k.BaseInc):
		c.IncrementBase()
	case key.Matches(msg, k.BaseDec):
		c.DecrementBase()
	case key.Matches(msg, k.Favorite):
		return m, m.toggleFavorite()
	case key.Matches(msg, k.Confirm):
		return m.submit()
	}
	return m, nil
}

func (m Model) toggleFavorite() tea.Cmd {
	confirm, err := m.opt.Favorites.Toggle()
	if err != nil {
		return nil
	}
	timeout := m.opt.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return favoriteMsg(confirm(ctx))
	}
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	call, err := m.opt.Composer.PrepareSubmit()
	if err != nil {
		return m, nil
	}
	m.submitting = true
	m.status, m.statusErr = "Sending order...", false
	timeout := m.opt.Timeout
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return submittedMsg(call(ctx))
	}
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

func loadNotice(err error) string {
	if errors.Is(err, catalog.ErrNotFound) {
		return "Dish not found."
	}
	return "Could not load the dish. Check your connection and try again (r)."
}

func submitNotice(err error) string {
	switch {
	case errors.Is(err, catalog.ErrRejected):
		return "The order was rejected. Review it and try again."
	case errors.Is(err, catalog.ErrUnauthorized):
		return "Not authorized. Run `foodie auth login` and try again."
	default:
		return "Could not place the order. Check your connection and try again."
	}
}

// Run starts the screen and returns its final state.
func Run(m Model) (Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return m, err
	}
	fm, ok := final.(Model)
	if !ok {
		return m, nil
	}
	return fm, nil
}
