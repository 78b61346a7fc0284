// Package tui renders a terminal simulation of the Kinetic page: scroll
// the virtual document with j/k, watch blocks reveal and the hero fade,
// and run the inquiry dialog with c.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/kinetic"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/domain"
)

const scrollStep = 40

var (
	hiddenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	heroStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle  = lipgloss.NewStyle().Faint(true)
)

// Block is one revealable document section shown in the simulation.
type Block struct {
	Ref   domain.ElementRef
	Title string
	Body  string
}

type tickMsg struct{}

// Model is the bubbletea model for the page simulation.
type Model struct {
	page    *kinetic.Page
	surface *sim.Page
	view    *sim.View
	blocks  []Block
	render  func(string) (string, error)

	docHeight float64

	dialogOpen  bool
	detailField int // 0=name 1=email 2=note
	details     [3]string
	invalid     map[domain.Field]bool

	width    int
	quitting bool
}

// NewModel assembles the simulation model. The page must already be
// initialized against the surface.
func NewModel(page *kinetic.Page, surface *sim.Page, view *sim.View, blocks []Block, docHeight float64, width int) Model {
	return Model{
		page:      page,
		surface:   surface,
		view:      view,
		blocks:    blocks,
		render:    NewRenderer(width),
		docHeight: docHeight,
		invalid:   make(map[domain.Field]bool),
		width:     width,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.render = NewRenderer(msg.Width)
		return m, nil

	case tickMsg:
		// Keep refreshing while a typing chain is in flight so the bot
		// turn appears when the delay elapses.
		if d := m.page.Dialog(); d != nil && d.Busy() {
			return m, tick()
		}
		return m, nil

	case tea.KeyMsg:
		if m.dialogOpen {
			return m.updateDialog(msg)
		}
		return m.updateScroll(msg)
	}
	return m, nil
}

func (m Model) updateScroll(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		m.scrollBy(scrollStep)
	case "k", "up":
		m.scrollBy(-scrollStep)
	case " ", "pgdown":
		m.scrollBy(m.surface.Height())
	case "g":
		m.scrollTo(0)
	case "c":
		if d := m.page.Dialog(); d != nil {
			if err := d.Start(context.Background()); err == nil {
				m.dialogOpen = true
				return m, tick()
			}
			m.dialogOpen = true
		}
	}
	return m, nil
}

func (m *Model) scrollBy(delta float64) {
	m.scrollTo(m.surface.ScrollOffset() + delta)
}

func (m *Model) scrollTo(offset float64) {
	max := m.docHeight - m.surface.Height()
	if offset > max {
		offset = max
	}
	if offset < 0 {
		offset = 0
	}
	// One keypress is one scroll event plus one display frame.
	m.surface.Scroll(offset)
	m.surface.StepFrame()
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.page.Dialog()
	session, _ := d.Session()

	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.dialogOpen = false
		return m, nil
	}

	switch session.Step {
	case domain.StepWorkType, domain.StepSource:
		return m.updateChoice(msg, session.Step)
	case domain.StepDetails:
		return m.updateDetails(msg)
	}
	return m, nil
}

func (m Model) updateChoice(msg tea.KeyMsg, step domain.Step) (tea.Model, tea.Cmd) {
	options := m.options(step)
	key := msg.String()
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(options) {
			d := m.page.Dialog()
			var err error
			if step == domain.StepWorkType {
				err = d.SubmitWork(context.Background(), options[idx])
			} else {
				err = d.ChooseSource(context.Background(), options[idx])
			}
			if err == nil {
				return m, tick()
			}
		}
	}
	return m, nil
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.detailField = (m.detailField + 1) % 3
	case "shift+tab":
		m.detailField = (m.detailField + 2) % 3
	case "backspace":
		cur := m.details[m.detailField]
		if cur != "" {
			m.details[m.detailField] = cur[:len(cur)-1]
		}
	case "enter":
		// The Enter shortcut works from any of the three fields.
		d := m.page.Dialog()
		err := d.SubmitDetails(context.Background(), m.details[0], m.details[1], m.details[2])
		m.invalid = make(map[domain.Field]bool)
		if ve, ok := domain.IsValidation(err); ok {
			m.invalid[ve.Field] = true
			if ve.Field == domain.FieldName {
				m.detailField = 0
			} else if ve.Field == domain.FieldEmail {
				m.detailField = 1
			}
		}
		return m, nil
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.details[m.detailField] += string(msg.Runes)
		case tea.KeySpace:
			m.details[m.detailField] += " "
		}
	}
	return m, nil
}

func (m Model) options(step domain.Step) []string {
	script := m.page.Script()
	if script == nil {
		return nil
	}
	if step == domain.StepWorkType {
		return script.Work.Options
	}
	return script.Source.Options
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.dialogOpen {
		return m.viewDialog()
	}
	return m.viewDocument()
}

func (m Model) viewDocument() string {
	var b strings.Builder

	state, _ := m.surface.LastPublished()
	if state.Hero != nil {
		level := int(state.Hero.Opacity * 4)
		b.WriteString(heroStyle.Faint(level < 2).Render("◤ HERO"))
		fmt.Fprintf(&b, "  translate=%.0f opacity=%.2f\n\n", state.Hero.TranslateY, state.Hero.Opacity)
	}

	for _, blk := range m.blocks {
		if m.surface.Visible(blk.Ref) {
			fmt.Fprintf(&b, "%s\n%s\n\n", heroStyle.Render(blk.Title), blk.Body)
		} else {
			b.WriteString(hiddenStyle.Render("· · · (scrolls into view)") + "\n\n")
		}
	}

	fmt.Fprintf(&b, "offset %.0f / %.0f\n", state.Offset, m.docHeight)
	b.WriteString(footerStyle.Render("j/k scroll · space page · g top · c contact · q quit"))
	return b.String()
}

func (m Model) viewDialog() string {
	var b strings.Builder
	d := m.page.Dialog()
	session, started := d.Session()
	if !started {
		return "dialog unavailable\n"
	}

	for _, turn := range session.Transcript {
		if turn.Actor == domain.ActorBot {
			rendered, err := m.render(turn.Text)
			if err != nil {
				rendered = turn.Text + "\n"
			}
			b.WriteString(botStyle.Render("●") + rendered)
		} else {
			b.WriteString(userStyle.Render("▸ "+turn.Text) + "\n\n")
		}
	}

	if d.Busy() {
		b.WriteString(hiddenStyle.Render("typing…") + "\n")
	}

	switch session.Step {
	case domain.StepWorkType, domain.StepSource:
		if !d.Busy() {
			for i, opt := range m.options(session.Step) {
				fmt.Fprintf(&b, "  [%d] %s\n", i+1, opt)
			}
		}
	case domain.StepDetails:
		if !d.Busy() {
			labels := []string{"name", "email", "note"}
			fields := []domain.Field{domain.FieldName, domain.FieldEmail, domain.FieldNote}
			for i, label := range labels {
				cursor := "  "
				if i == m.detailField {
					cursor = "> "
				}
				line := fmt.Sprintf("%s%s: %s", cursor, label, m.details[i])
				if m.invalid[fields[i]] {
					line = invalidStyle.Render(line + "  ✗")
				}
				b.WriteString(line + "\n")
			}
			b.WriteString(footerStyle.Render("tab fields · enter send") + "\n")
		}
	case domain.StepSuccess:
		if msg, ok := m.view.Summary(); ok {
			fmt.Fprintf(&b, "\n%s\n→ %s\n", heroStyle.Render("Message ready"), msg.To)
		}
	}

	b.WriteString(footerStyle.Render("esc back · ctrl+c quit"))
	return b.String()
}
