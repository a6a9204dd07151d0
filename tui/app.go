package tui

import (
	"fmt"
	"os"

	"codeberg.org/tslocum/cview"
	"github.com/google/uuid"

	"github.com/riadafridishibly/diskviz/export"
	"github.com/riadafridishibly/diskviz/logger"
	"github.com/riadafridishibly/diskviz/scanner"
)

type App struct {
	app      *cview.Application
	scanner  *scanner.Scanner
	exporter *export.Exporter
	config   Config

	header      *cview.TextView
	footer      *cview.TextView
	extInput    *cview.InputField
	nameInput   *cview.InputField
	table       *cview.Table
	panels      *cview.Panels
	layout      *cview.Flex
	detailModal *cview.Modal
	themeModal  *cview.Modal

	// State below is only touched on the UI goroutine.
	report     *scanner.Report
	scanID     uuid.UUID
	errMessage string
	notice     string
	extFilter  string
	nameFilter string
	elapsed    int // seconds ticked while scanning
	filesFound int64
	scanPath   string
	showDetail bool
	showTheme  bool

	uiUpdates chan func()
	done      chan struct{}

	userHomeDir  string
	currentTheme Theme
}

func defaultTheme() Theme {
	return themes["nord"]
}

func (a *App) switchTheme(themeName string) {
	if th, ok := themes[themeName]; ok {
		a.currentTheme = th
	}
}

func (a *App) applyTheme() {
	theme := a.currentTheme

	a.header.SetBackgroundColor(theme.headerBg)
	a.header.SetTextColor(theme.headerFg)

	a.footer.SetBackgroundColor(theme.footerBg)
	a.footer.SetTextColor(theme.footerFg)

	for _, input := range []*cview.InputField{a.extInput, a.nameInput} {
		input.SetBackgroundColor(theme.bg)
		input.SetLabelColor(theme.blue)
		input.SetFieldBackgroundColor(theme.darkGray)
		input.SetFieldTextColor(theme.fg)
	}

	for _, modal := range []*cview.Modal{a.detailModal, a.themeModal} {
		modal.SetBackgroundColor(theme.modalBg)
		modal.SetTextColor(theme.modalFg)
		modal.SetButtonBackgroundColor(theme.buttonBg)
		modal.SetButtonTextColor(theme.buttonFg)
	}

	a.table.SetBackgroundColor(theme.bg)
	a.panels.SetBackgroundColor(theme.bg)

	a.refresh()
}

func NewApp(s *scanner.Scanner, exporter *export.Exporter, config Config) *App {
	app := cview.NewApplication()
	theme := defaultTheme()

	header := cview.NewTextView()
	header.SetDynamicColors(true)
	header.SetTextAlign(cview.AlignCenter)

	footer := cview.NewTextView()
	footer.SetDynamicColors(true)
	footer.SetTextAlign(cview.AlignCenter)

	extInput := cview.NewInputField()
	extInput.SetLabel(" Type: ")
	extInput.SetPlaceholder("e.g. .txt, .jpg")

	nameInput := cview.NewInputField()
	nameInput.SetLabel(" Name: ")
	nameInput.SetPlaceholder("e.g. report")

	detailModal := cview.NewModal()
	detailModal.AddButtons([]string{"Okay"})

	themeModal := cview.NewModal()
	themeNames := getThemeNames()
	themeModal.AddButtons(themeNames)

	panels := cview.NewPanels()
	table := cview.NewTable()
	panels.AddPanel("table", table, true, true)

	a := &App{
		app:          app,
		scanner:      s,
		exporter:     exporter,
		config:       config.withDefaults(),
		header:       header,
		footer:       footer,
		extInput:     extInput,
		nameInput:    nameInput,
		table:        table,
		panels:       panels,
		detailModal:  detailModal,
		themeModal:   themeModal,
		uiUpdates:    make(chan func(), 128),
		done:         make(chan struct{}),
		currentTheme: theme,
	}

	filters := cview.NewFlex()
	filters.AddItem(extInput, 0, 1, false)
	filters.AddItem(nameInput, 0, 1, false)

	flex := cview.NewFlex()
	flex.SetDirection(cview.FlexRow)
	flex.AddItem(header, 1, 0, false)
	flex.AddItem(filters, 1, 0, false)
	flex.AddItem(panels, 0, 1, true)
	flex.AddItem(footer, 1, 0, false)
	a.layout = flex

	extInput.SetChangedFunc(func(text string) { a.filterChanged(text, a.nameFilter) })
	nameInput.SetChangedFunc(func(text string) { a.filterChanged(a.extFilter, text) })
	extInput.SetDoneFunc(a.filterDone)
	nameInput.SetDoneFunc(a.filterDone)

	app.SetInputCapture(a.handleInput)

	detailModal.SetDoneFunc(func(_ int, _ string) {
		a.showDetail = false
		a.setRoot(a.layout, true)
	})

	themeModal.SetDoneFunc(func(buttonIndex int, buttonLabel string) {
		a.showTheme = false
		a.setRoot(a.layout, true)

		if buttonIndex >= 0 && buttonIndex < len(themeNames) {
			a.switchTheme(buttonLabel)
			a.applyTheme()
		}
	})

	if home, err := os.UserHomeDir(); err == nil {
		a.userHomeDir = home
	} else {
		logger.Warn().Err(err).Msg("Cannot resolve home directory")
	}

	a.setRoot(flex, true)
	a.applyTheme()

	return a
}

func (a *App) showThemeSelector() {
	theme := a.currentTheme
	text := fmt.Sprintf("Select Theme (Current: [%s]%s[-])", theme.orange.String(), theme.Name)
	a.themeModal.SetText(text)
	a.showTheme = true
	a.setRoot(a.themeModal, false)
}

// Run blocks until the user quits.
func (a *App) Run() error {
	logger.Info().Str("theme", a.currentTheme.Name).Msg("Starting UI")

	go func() {
		for updateFn := range a.uiUpdates {
			a.app.QueueUpdateDraw(updateFn)
		}
	}()
	go a.processScanEvents()
	go a.tick()

	err := a.app.Run()
	close(a.done)
	return err
}

// Quit abandons any running scan and leaves the event loop.
func (a *App) Quit() {
	a.scanner.Stop()
	a.app.Stop()
}
