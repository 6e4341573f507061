package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/jaskplan/internal/config"
	"github.com/jask/jaskplan/internal/database/repository"
	"github.com/jask/jaskplan/internal/engine"
	"github.com/jask/jaskplan/internal/prefs"
	"github.com/jask/jaskplan/internal/service"
	"github.com/jask/jaskplan/internal/testdata"
)

// App ties together views. It keeps one snapshot of items plus the
// locked-order ledger and recomputes the sequence, rank map and cost
// comparison from that snapshot on every change, so the board and the
// comparison can never disagree.
type App struct {
	ctx      context.Context
	cfg      config.Config
	repos    Repos
	services Services

	state appState
	modal modalState

	items  []repository.Item // raw rows, creation order
	ledger []string

	// derived on refresh, single source of truth for rendering
	sequence   []repository.Item
	ranks      map[string]int
	comparison engine.Comparison

	criterion engine.Criterion
	direction engine.Direction
	wsjfMode  bool

	cursor        int
	metricCursor  int
	inputBuffer   string
	editingItemID string
	status        string
}

type Repos struct {
	Items  *repository.ItemRepo
	Ledger *repository.LedgerRepo
}

type Services struct {
	Editor      *service.Editor
	Reorder     *service.Reorder
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewBoard    appState = "board"
	viewCompare  appState = "compare"
	viewSettings appState = "settings"
)

type modalState string

const (
	modalNone         modalState = ""
	modalNewItem      modalState = "newItem"
	modalRename       modalState = "rename"
	modalMetric       modalState = "metric"
	modalSizeLabel    modalState = "sizeLabel"
	modalConfirmReset modalState = "confirmReset"
)

func New(ctx context.Context, cfg config.Config, repos Repos, services Services) *App {
	a := &App{
		ctx:       ctx,
		cfg:       cfg,
		repos:     repos,
		services:  services,
		state:     viewBoard,
		criterion: engine.ParseCriterion(cfg.UI.DefaultCriterion),
		direction: engine.ParseDirection(cfg.UI.DefaultDirection),
		ranks:     map[string]int{},
	}
	if v, ok, err := prefs.LoadView(); err == nil && ok {
		a.criterion = engine.ParseCriterion(v.Criterion)
		a.direction = engine.ParseDirection(v.Direction)
		a.wsjfMode = v.WSJFMode
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadItems(), a.loadLedger())
}

func (a *App) loadItems() tea.Cmd {
	return func() tea.Msg {
		list, err := a.repos.Items.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return itemsMsg(list)
	}
}

func (a *App) loadLedger() tea.Cmd {
	return func() tea.Msg {
		ids, err := a.repos.Ledger.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return ledgerMsg(ids)
	}
}

// refresh recomputes everything derived from the current snapshot.
func (a *App) refresh() {
	normalized := service.Normalize(a.items)
	a.sequence = engine.Sequence(engine.SequenceInput{
		Items:       normalized,
		Criterion:   a.criterion,
		Direction:   a.direction,
		SizeLabels:  a.cfg.UI.SizeLabels,
		LockedOrder: a.ledger,
		WSJFMode:    a.wsjfMode,
	})
	a.ranks = engine.Ranks(normalized)
	a.comparison = engine.Compare(normalized, a.criterion, a.direction, a.cfg.UI.SizeLabels, a.ledger)
	if a.cursor >= len(a.sequence) {
		a.cursor = 0
	}
}

func (a *App) saveView() {
	_ = prefs.SaveView(prefs.View{
		Criterion: a.criterion.String(),
		Direction: a.direction.String(),
		WSJFMode:  a.wsjfMode,
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewCompare:
			return a.handleCompareKey(m)
		case viewSettings:
			return a.handleSettingsKey(m)
		default:
			return a.handleBoardKey(m)
		}
	case itemsMsg:
		a.items = []repository.Item(m)
		a.refresh()
	case ledgerMsg:
		a.ledger = []string(m)
		a.refresh()
	case movedMsg:
		// a manual move means the user now owns the order
		a.criterion = engine.ByCustom
		a.saveView()
		a.status = "moved " + truncate(a.titleByID(m.id), 24)
		a.refresh()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) titleByID(id string) string {
	if it, ok := a.itemByID(id); ok {
		return it.Title
	}
	return id
}

func (a *App) handleBoardKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "c":
		a.state = viewCompare
		a.status = ""
	case "p":
		a.state = viewSettings
		a.status = ""
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.sequence)-1 {
			a.cursor++
		}
	case "o":
		a.criterion = nextCriterion(a.criterion)
		a.saveView()
		a.refresh()
	case "v":
		if a.direction == engine.Asc {
			a.direction = engine.Desc
		} else {
			a.direction = engine.Asc
		}
		a.saveView()
		a.refresh()
	case "w":
		a.wsjfMode = !a.wsjfMode
		a.saveView()
		a.refresh()
	case "n":
		a.modal = modalNewItem
		a.inputBuffer = ""
	case "r":
		if it, ok := a.selected(); ok && it.Kind != repository.KindSentinel {
			a.modal = modalRename
			a.editingItemID = it.ID
			a.inputBuffer = it.Title
		}
	case "e":
		if it, ok := a.selected(); ok && it.Kind != repository.KindSentinel {
			a.modal = modalMetric
			a.editingItemID = it.ID
			a.metricCursor = 0
			a.inputBuffer = ""
		}
	case "z":
		if it, ok := a.selected(); ok && it.Kind != repository.KindSentinel {
			a.modal = modalSizeLabel
			a.editingItemID = it.ID
			a.inputBuffer = it.SizeLabel
		}
	case "x":
		if it, ok := a.selected(); ok && it.Kind == repository.KindNormal {
			return a, a.deleteCmd(it.ID)
		}
		a.status = "only normal items can be deleted"
	case "K":
		if it, ok := a.selected(); ok && it.Kind == repository.KindNormal {
			return a, a.moveCmd(it.ID, -1)
		}
	case "J":
		if it, ok := a.selected(); ok && it.Kind == repository.KindNormal {
			return a, a.moveCmd(it.ID, 1)
		}
	}
	return a, nil
}

func (a *App) handleCompareKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "b", "c":
		a.state = viewBoard
	case "p":
		a.state = viewSettings
	}
	return a, nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "esc", "b":
		a.state = viewBoard
		a.status = ""
	case "s":
		return a, a.seedCmd()
	case "d":
		a.cfg.UI.DefaultCriterion = a.criterion.String()
		a.cfg.UI.DefaultDirection = a.direction.String()
		return a, a.saveDefaultsCmd()
	case "x":
		a.modal = modalConfirmReset
	}
	return a, nil
}

func (a *App) saveDefaultsCmd() tea.Cmd {
	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return errMsg{err}
		}
		return statusMsg(fmt.Sprintf("default sort is now %s %s", cfg.UI.DefaultCriterion, cfg.UI.DefaultDirection))
	}
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalMetric:
		switch m.String() {
		case "esc":
			a.modal = modalNone
			a.inputBuffer = ""
			return a, nil
		case "left", "h":
			if a.metricCursor > 0 {
				a.metricCursor--
				a.inputBuffer = ""
			}
			return a, nil
		case "right", "l", "tab":
			if a.metricCursor < len(repository.Metrics)-1 {
				a.metricCursor++
				a.inputBuffer = ""
			}
			return a, nil
		case "enter":
			metric := repository.Metrics[a.metricCursor]
			value, _ := strconv.ParseFloat(strings.TrimSpace(a.inputBuffer), 64)
			a.inputBuffer = ""
			return a, a.setMetricCmd(a.editingItemID, metric, value)
		case "backspace":
			if len(a.inputBuffer) > 0 {
				a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
			}
			return a, nil
		}
		if m.Type == tea.KeyRunes {
			for _, r := range m.Runes {
				if (r >= '0' && r <= '9') || r == '.' {
					a.inputBuffer += string(r)
				}
			}
		}
		return a, nil
	}

	// text-input modals
	switch m.Type {
	case tea.KeyEsc:
		a.modal = modalNone
		a.inputBuffer = ""
	case tea.KeyEnter:
		text := strings.TrimSpace(a.inputBuffer)
		mode := a.modal
		a.modal = modalNone
		a.inputBuffer = ""
		switch mode {
		case modalNewItem:
			if text == "" {
				a.status = "enter a title"
				return a, nil
			}
			return a, a.createItemCmd(text)
		case modalRename:
			if text == "" {
				a.status = "enter a title"
				return a, nil
			}
			return a, a.renameCmd(a.editingItemID, text)
		case modalSizeLabel:
			return a, a.setSizeLabelCmd(a.editingItemID, text)
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		if len(a.inputBuffer) > 0 {
			a.inputBuffer = a.inputBuffer[:len(a.inputBuffer)-1]
		}
	case tea.KeySpace:
		a.inputBuffer += " "
	case tea.KeyRunes:
		a.inputBuffer += string(m.Runes)
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewCompare:
		body = a.renderCompare()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderBoard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

// commands

func (a *App) createItemCmd(title string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.services.Editor.Create(a.ctx, title); err != nil {
				return errMsg{err}
			}
			return statusMsg("item added")
		},
		a.loadItems(),
	)
}

func (a *App) renameCmd(id, title string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Editor.Rename(a.ctx, id, title); err != nil {
				return errMsg{err}
			}
			return statusMsg("renamed")
		},
		a.loadItems(),
	)
}

func (a *App) setMetricCmd(id string, m repository.Metric, value float64) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Editor.SetMetric(a.ctx, id, m, value); err != nil {
				return errMsg{err}
			}
			return statusMsg(fmt.Sprintf("%s = %g", m, value))
		},
		a.loadItems(),
	)
}

func (a *App) setSizeLabelCmd(id, raw string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			label, err := a.services.Editor.SetSizeLabel(a.ctx, id, raw)
			if err != nil {
				return errMsg{err}
			}
			if label == "" {
				return statusMsg("size cleared")
			}
			return statusMsg("size: " + label)
		},
		a.loadItems(),
	)
}

func (a *App) deleteCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Editor.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("item removed")
		},
		a.loadItems(),
		a.loadLedger(),
	)
}

func (a *App) moveCmd(id string, delta int) tea.Cmd {
	ids := a.bodyIDs()
	return tea.Batch(
		func() tea.Msg {
			if _, err := a.services.Reorder.Move(a.ctx, ids, id, delta); err != nil {
				return errMsg{err}
			}
			return movedMsg{id: id}
		},
		a.loadLedger(),
	)
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			return statusMsg("database reset")
		},
		a.loadItems(),
		a.loadLedger(),
	)
}

func (a *App) seedCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := testdata.Seed(a.ctx, a.repos.Items); err != nil {
				return errMsg{err}
			}
			return statusMsg("sample backlog seeded")
		},
		a.loadItems(),
	)
}

// selected returns the item under the cursor in the displayed sequence.
func (a *App) selected() (repository.Item, bool) {
	if a.cursor < 0 || a.cursor >= len(a.sequence) {
		return repository.Item{}, false
	}
	return a.sequence[a.cursor], true
}

// bodyIDs is the displayed order minus the sentinel and any pinned
// references: the permutation a manual move snapshots into the ledger.
func (a *App) bodyIDs() []string {
	pinned := a.criterion != engine.ByCustom && !a.wsjfMode
	var ids []string
	for _, it := range a.sequence {
		if it.Kind == repository.KindSentinel {
			continue
		}
		if pinned && (it.Kind == repository.KindRefMin || it.Kind == repository.KindRefMax) {
			continue
		}
		ids = append(ids, it.ID)
	}
	return ids
}

func nextCriterion(c engine.Criterion) engine.Criterion {
	for i, known := range engine.Criteria {
		if known == c {
			return engine.Criteria[(i+1)%len(engine.Criteria)]
		}
	}
	return engine.Criteria[0]
}

// messages

type itemsMsg []repository.Item

type ledgerMsg []string

type statusMsg string

type errMsg struct{ error }

type movedMsg struct{ id string }

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	urgentStyle = lipgloss.NewStyle().Bold(true)
)

func (a *App) renderBoard() string {
	mode := ""
	if a.wsjfMode {
		mode = "  [WSJF mode]"
	}
	title := titleStyle.Render(fmt.Sprintf("Backlog — %s %s%s", a.criterion, a.direction, mode))
	out := title + "\n"
	out += dimStyle.Render(fmt.Sprintf("%s %4s  %-34s %-5s %7s %7s %7s", " ", "rank", "title", "size", "jobsz", "cod", "wsjf")) + "\n"
	for i, it := range a.sequence {
		marker := " "
		if i == a.cursor {
			marker = "▶"
		}
		out += fmt.Sprintf("%s %s\n", marker, a.renderRow(it))
	}
	out += "[n] New  [r] Rename  [e] Estimate  [z] Size  [x] Delete  [J/K] Move  [o] Sort  [v] Dir  [w] WSJF mode  [c] Compare  [p] Settings  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderRow(it repository.Item) string {
	d := engine.Derive(it)
	rank := "   -"
	if r, ok := a.ranks[it.ID]; ok {
		rank = fmt.Sprintf("%4d", r)
		if r == 1 {
			rank = urgentStyle.Render(rank)
		}
	}
	label := it.Title
	switch it.Kind {
	case repository.KindRefMin:
		label = "⊥ " + label
	case repository.KindRefMax:
		label = "⊤ " + label
	case repository.KindSentinel:
		return dimStyle.Render(fmt.Sprintf("%4s  %-34s", "", label))
	}
	return fmt.Sprintf("%s  %-34s %-5s %7s %7s %7s",
		rank, truncate(label, 34), it.SizeLabel,
		aggregate(d.JobSizeComplete, d.JobSize),
		aggregate(d.CoDComplete, d.CoD),
		densityLabel(d))
}

func (a *App) renderCompare() string {
	cmp := a.comparison
	title := titleStyle.Render("Sequencing cost")
	out := title + "\n"
	out += fmt.Sprintf("Eligible items: %d (complete estimates on both sides)\n", len(cmp.OptimalOrder))
	out += fmt.Sprintf("Optimal cost (WSJF order): %.1f\n", cmp.OptimalCost)
	out += fmt.Sprintf("Current cost (%s %s):      %.1f\n", a.criterion, a.direction, cmp.CurrentCost)
	if cmp.OverheadPercent > 0 {
		out += urgentStyle.Render(fmt.Sprintf("Overhead: +%d%%", cmp.OverheadPercent)) + "\n"
	} else {
		out += "Overhead: none — current order is cost-optimal\n"
	}
	out += "\n" + dimStyle.Render(fmt.Sprintf("%-36s    %-36s", "optimal order", "current order")) + "\n"
	n := len(cmp.OptimalOrder)
	if len(cmp.CurrentOrder) > n {
		n = len(cmp.CurrentOrder)
	}
	for i := 0; i < n; i++ {
		left, right := "", ""
		if i < len(cmp.OptimalOrder) {
			left = fmt.Sprintf("%2d. %s", i+1, truncate(cmp.OptimalOrder[i].Title, 30))
		}
		if i < len(cmp.CurrentOrder) {
			right = fmt.Sprintf("%2d. %s", i+1, truncate(cmp.CurrentOrder[i].Title, 30))
		}
		out += fmt.Sprintf("%-36s    %-36s\n", left, right)
	}
	out += "[esc] Board  [p] Settings  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	out += fmt.Sprintf("Database: %s\n", a.cfg.Database.Path)
	out += fmt.Sprintf("Size labels: %s\n", strings.Join(a.cfg.UI.SizeLabels, " < "))
	out += fmt.Sprintf("Default sort: %s %s\n", a.cfg.UI.DefaultCriterion, a.cfg.UI.DefaultDirection)
	out += "\n[s] Seed sample backlog\n"
	out += "[d] Save current sort as default\n"
	out += "[x] Reset database (clears everything)\n"
	out += "[esc] Board  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalNewItem:
		return titleStyle.Render("New item") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalRename:
		return titleStyle.Render("Rename item") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalSizeLabel:
		return titleStyle.Render("T-shirt size") + fmt.Sprintf("\n%s\n[enter] Save  [esc] Cancel", a.inputBuffer)
	case modalConfirmReset:
		return titleStyle.Render("Reset database?") + "\nThis will delete all data.\n[y] Yes  [n] No"
	case modalMetric:
		it, ok := a.itemByID(a.editingItemID)
		if !ok {
			return ""
		}
		out := titleStyle.Render("Estimate: "+it.Title) + "\n"
		for i, m := range repository.Metrics {
			marker := " "
			if i == a.metricCursor {
				marker = "▶"
			}
			out += fmt.Sprintf("%s %-10s %g\n", marker, m, it.Value(m))
		}
		out += fmt.Sprintf("New value: %s\n", a.inputBuffer)
		out += "[←/→] Metric  [enter] Save  [esc] Close"
		return out
	default:
		return ""
	}
}

func (a *App) itemByID(id string) (repository.Item, bool) {
	for _, it := range a.items {
		if it.ID == id {
			return it, true
		}
	}
	return repository.Item{}, false
}

func aggregate(complete bool, v float64) string {
	if !complete {
		return "—"
	}
	return fmt.Sprintf("%g", v)
}

func densityLabel(d engine.Derived) string {
	if !d.WSJFDefined {
		return "—"
	}
	return fmt.Sprintf("%.2f", d.WSJF)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
