package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/csams/tmtext/internal/cache"
	"github.com/csams/tmtext/internal/feed"
	"github.com/csams/tmtext/internal/models"
	"github.com/gdamore/tcell/v2"
	"pkt.systems/pslog"
)

// localAccount owns maps added by hand
const localAccount = "local"

type App struct {
	ctx      context.Context
	log      pslog.Logger
	screen   tcell.Screen
	quit     chan struct{}
	quitOnce sync.Once

	mode          Mode
	maps          *MapListView
	catalog       *models.Catalog
	cache         *cache.Cache
	fetcher       *feed.Fetcher
	commandLine   string
	statusMessage string
	statusError   bool
	helpDialog    *HelpDialog
	confirmDialog *ConfirmationDialog
	importing     int
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeSearch
)

// View is a pane that draws itself and consumes keys
type View interface {
	Draw(s tcell.Screen)
	HandleKey(ev *tcell.EventKey) bool
}

// Options wires the browser to its data
type Options struct {
	Catalog  *models.Catalog
	Cache    *cache.Cache
	Fetcher  *feed.Fetcher
	ShowRuns bool
	MinScore int
}

// importResult is posted to the event loop when a background import finishes
type importResult struct {
	tcell.EventTime
	src  string
	maps []*models.Map
	err  error
}

// NewApp creates the browser. The logger is taken from ctx; cancelling ctx
// stops a running app.
func NewApp(ctx context.Context, opts Options) *App {
	a := &App{
		ctx:           ctx,
		log:           pslog.Ctx(ctx),
		quit:          make(chan struct{}),
		catalog:       opts.Catalog,
		cache:         opts.Cache,
		fetcher:       opts.Fetcher,
		helpDialog:    NewHelpDialog(),
		confirmDialog: NewConfirmationDialog(),
	}
	if a.catalog == nil {
		a.catalog = &models.Catalog{}
	}
	if a.cache == nil {
		a.cache = cache.New(0)
	}

	a.maps = NewMapListView(a.cache)
	a.maps.SetShowRuns(opts.ShowRuns)
	a.maps.GetSearchState().SetMinScore(opts.MinScore)
	a.refresh()
	return a
}

// Run opens the terminal and blocks until the user quits or ctx is done
func (a *App) Run() error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	return a.RunScreen(s)
}

// RunScreen runs the event loop on s, which is initialized and finalized here
func (a *App) RunScreen(s tcell.Screen) error {
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	a.screen = s
	s.SetStyle(tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg))
	s.Clear()

	go func() {
		select {
		case <-a.ctx.Done():
			a.log.Info("context done, shutting down")
			a.stop()
		case <-a.quit:
		}
	}()

	a.log.Info("browser started", "maps", len(a.catalog.Maps))
	a.draw()
	for {
		select {
		case <-a.quit:
			a.log.Info("browser stopped")
			return nil
		default:
		}

		ev := s.PollEvent()
		if ev == nil {
			return nil
		}
		if a.handleEvent(ev) {
			a.draw()
		}
	}
}

// stop ends the event loop. Safe to call more than once and from any goroutine.
func (a *App) stop() {
	a.quitOnce.Do(func() {
		close(a.quit)
		if a.screen != nil {
			// wake PollEvent
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	})
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		return true
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *importResult:
		a.finishImport(ev)
		return true
	}
	return false
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	// Help dialog takes precedence over all other input
	if a.helpDialog.IsVisible() {
		return a.helpDialog.HandleKey(ev)
	}
	if a.confirmDialog.IsVisible() {
		return a.confirmDialog.HandleKey(ev)
	}

	switch a.mode {
	case ModeCommand:
		return a.handleCommandKey(ev)
	case ModeSearch:
		return a.handleSearchKey(ev)
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.stop()
		return false
	case tcell.KeyEscape:
		if !a.maps.ClearSearch() {
			a.clearStatus()
		}
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.stop()
			return false
		case ':':
			a.mode = ModeCommand
			a.commandLine = ""
			return true
		case '/':
			a.mode = ModeSearch
			a.maps.GetSearchState().MoveCursorEnd()
			return true
		case '?':
			a.helpDialog.Show()
			return true
		case 'd':
			a.confirmDelete()
			return true
		case 'j', 'k':
			a.clearStatus()
		}
	}
	return a.maps.HandleKey(ev)
}

func (a *App) handleCommandKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.commandLine = ""
	case tcell.KeyEnter:
		line := a.commandLine
		a.mode = ModeNormal
		a.commandLine = ""
		a.executeCommand(line)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.commandLine == "" {
			a.mode = ModeNormal
			return true
		}
		runes := []rune(a.commandLine)
		a.commandLine = string(runes[:len(runes)-1])
	case tcell.KeyRune:
		a.commandLine += string(ev.Rune())
	default:
		return false
	}
	return true
}

func (a *App) handleSearchKey(ev *tcell.EventKey) bool {
	search := a.maps.GetSearchState()
	switch ev.Key() {
	case tcell.KeyEscape:
		a.mode = ModeNormal
		a.maps.ClearSearch()
		return true
	case tcell.KeyEnter:
		a.mode = ModeNormal
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if search.Query() == "" {
			a.mode = ModeNormal
			return true
		}
		search.DeleteChar()
	case tcell.KeyDelete:
		search.DeleteCharForward()
	case tcell.KeyLeft:
		search.MoveCursorLeft()
		return true
	case tcell.KeyRight:
		search.MoveCursorRight()
		return true
	case tcell.KeyCtrlA:
		search.MoveCursorStart()
		return true
	case tcell.KeyCtrlE:
		search.MoveCursorEnd()
		return true
	case tcell.KeyCtrlK:
		search.DeleteToEnd()
	case tcell.KeyCtrlW:
		search.DeleteWord()
	case tcell.KeyRune:
		search.InsertChar(ev.Rune())
	default:
		return false
	}
	a.maps.UpdateSearch()
	return true
}

func (a *App) executeCommand(line string) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "":
	case "q", "quit":
		a.stop()
	case "w", "write":
		if a.save() {
			a.setStatus(fmt.Sprintf("Saved %d maps", len(a.catalog.Maps)))
		}
	case "wq":
		if a.save() {
			a.stop()
		}
	case "add":
		if arg == "" {
			a.setError("Usage: add <formatted name>")
			return
		}
		a.addMap(arg)
	case "import":
		if arg == "" {
			a.setError("Usage: import <file-or-url>")
			return
		}
		a.startImport(arg)
	case "purge":
		a.cache.Purge()
		a.refresh()
		a.setStatus("Formatting cache purged")
	case "help":
		a.helpDialog.Show()
	default:
		a.setError("Unknown command: " + name)
	}
}

func (a *App) addMap(name string) {
	m := &models.Map{
		Name:     name,
		Author:   models.User{AccountID: localAccount, DisplayName: localAccount},
		Uploaded: time.Now().UTC(),
	}
	if !a.catalog.Add(m) {
		a.setError("Already in catalog: " + m.PlainName)
		return
	}
	a.log.Info("map added", "uid", m.UID, "name", m.PlainName)

	a.refresh()
	a.maps.SelectUID(m.UID)
	if a.save() {
		a.setStatus("Added: " + m.PlainName)
	}
}

func (a *App) startImport(src string) {
	if a.fetcher == nil {
		a.setError("Import is not available")
		return
	}

	a.importing++
	a.setStatus("Importing " + src + "...")
	a.log.Info("import started", "src", src)

	go func() {
		maps, err := a.fetcher.Load(a.ctx, src)
		ev := &importResult{src: src, maps: maps, err: err}
		ev.SetEventNow()
		if err := a.screen.PostEvent(ev); err != nil {
			a.log.Warn("dropped import result", "src", src, "err", err)
		}
	}()
}

func (a *App) finishImport(ev *importResult) {
	if a.importing > 0 {
		a.importing--
	}
	if ev.err != nil {
		a.log.Error("import failed", "src", ev.src, "err", ev.err)
		a.setError("Import failed: " + ev.err.Error())
		return
	}

	added := 0
	for _, m := range ev.maps {
		if a.catalog.Add(m) {
			added++
		}
	}
	a.log.Info("import finished", "src", ev.src, "listed", len(ev.maps), "added", added)

	a.refresh()
	if added > 0 && !a.save() {
		return
	}
	a.setStatus(fmt.Sprintf("Imported %d of %d maps from %s", added, len(ev.maps), ev.src))
}

func (a *App) confirmDelete() {
	m := a.maps.GetSelected()
	if m == nil {
		a.setError("No map selected")
		return
	}

	a.confirmDialog.Show("Delete Map", fmt.Sprintf("Remove %q from the catalog?", m.PlainName), func() {
		if !a.catalog.Remove(m.UID) {
			return
		}
		a.log.Info("map removed", "uid", m.UID, "name", m.PlainName)
		a.refresh()
		if a.save() {
			a.setStatus("Removed: " + m.PlainName)
		}
	}, nil)
}

// save writes the catalog and reports failures in the status bar
func (a *App) save() bool {
	if a.catalog.Path() == "" {
		return true
	}
	if err := a.catalog.Save(); err != nil {
		a.log.Error("failed to save catalog", "path", a.catalog.Path(), "err", err)
		a.setError("Save failed: " + err.Error())
		return false
	}
	a.log.Debug("catalog saved", "path", a.catalog.Path(), "maps", len(a.catalog.Maps))
	return true
}

func (a *App) refresh() {
	a.maps.SetMaps(a.catalog.Maps)
}

func (a *App) setStatus(msg string) {
	a.statusMessage = msg
	a.statusError = false
}

func (a *App) setError(msg string) {
	a.statusMessage = msg
	a.statusError = true
}

func (a *App) clearStatus() {
	if a.importing > 0 {
		return // keep the import notice visible
	}
	a.statusMessage = ""
	a.statusError = false
}

func (a *App) draw() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBg).Foreground(ColorFg)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	a.maps.Draw(a.screen)
	a.drawStatusBar()

	// dialogs go on top of everything
	a.helpDialog.Draw(a.screen)
	a.confirmDialog.Draw(a.screen)

	a.screen.Show()
}

func (a *App) drawStatusBar() {
	w, h := a.screen.Size()
	style := tcell.StyleDefault.Background(ColorBgHighlight).Foreground(ColorFg)

	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, style)
	}

	var modeStr string
	switch a.mode {
	case ModeNormal:
		modeStr = "NORMAL"
	case ModeCommand:
		modeStr = ":" + a.commandLine
	case ModeSearch:
		modeStr = "/" + a.maps.GetSearchState().Query()
	}
	drawText(a.screen, 0, h-1, style, modeStr)

	switch a.mode {
	case ModeSearch:
		search := a.maps.GetSearchState()
		query := []rune(search.Query())
		cursorX := 1 + textWidth(string(query[:search.CursorPos()]))
		ch := ' '
		if search.CursorPos() < len(query) {
			ch = query[search.CursorPos()]
		}
		a.screen.SetContent(cursorX, h-1, ch, nil, style.Reverse(true))
	case ModeCommand:
		a.screen.SetContent(textWidth(modeStr), h-1, ' ', nil, style.Reverse(true))
	}

	st := a.cache.Stats()
	info := fmt.Sprintf("%d maps | cache %d/%d", len(a.catalog.Maps), st.Size, st.Capacity)
	if a.importing > 0 {
		info = "importing | " + info
	}
	infoX := w - textWidth(info) - 1
	drawText(a.screen, infoX, h-1, style.Foreground(ColorDimmed), info)

	if a.statusMessage != "" {
		msgStyle := style.Foreground(ColorYellow)
		if a.statusError {
			msgStyle = style.Foreground(ColorError)
		}
		x := textWidth(modeStr) + 2
		drawTextClipped(a.screen, x, h-1, infoX-x-1, msgStyle, a.statusMessage)
	}
}
