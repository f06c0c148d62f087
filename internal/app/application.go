package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	fsutil "github.com/kk-code-lab/shellpage/internal/fs"
	"github.com/kk-code-lab/shellpage/internal/logging"
	"github.com/kk-code-lab/shellpage/internal/progress"
	"github.com/kk-code-lab/shellpage/internal/ui/terminal"
)

// ErrNoDocuments is returned when the document directory has nothing to read.
var ErrNoDocuments = errors.New("no documents found")

// errQuit unwinds the state machine when the user leaves the program.
var errQuit = errors.New("quit")

// Console is the single terminal line the reader drives.
type Console interface {
	ReadKey() (terminal.KeyEvent, error)
	ReadLine(label string, echo bool) (string, error)
	Redraw(text string) error
	Clear() error
	Columns() int
}

// Prompter supplies the fake shell prompt drawn before every line.
type Prompter interface {
	Prompt() string
	Width() int
}

// Library lists the documents available for reading.
type Library interface {
	List() ([]fsutil.Document, error)
}

// Options wires an Application. Logger, LoadLines and Sleep are optional.
type Options struct {
	Console   Console
	Prompt    Prompter
	Library   Library
	Store     progress.Store
	Logger    *log.Logger
	MenuPause time.Duration
	LoadLines func(path string) ([]string, error)
	Sleep     func(time.Duration)
}

// Application is the reader: document selection, the action menu, the
// reading loop and keyword search.
type Application struct {
	console   Console
	prompt    Prompter
	library   Library
	store     progress.Store
	logger    *log.Logger
	menuPause time.Duration
	loadLines func(string) ([]string, error)
	sleep     func(time.Duration)
}

func NewApplication(opts Options) *Application {
	app := &Application{
		console:   opts.Console,
		prompt:    opts.Prompt,
		library:   opts.Library,
		store:     opts.Store,
		logger:    opts.Logger,
		menuPause: opts.MenuPause,
		loadLines: opts.LoadLines,
		sleep:     opts.Sleep,
	}
	if app.logger == nil {
		app.logger = logging.Discard()
	}
	if app.loadLines == nil {
		app.loadLines = fsutil.LoadLines
	}
	if app.sleep == nil {
		app.sleep = time.Sleep
	}
	return app
}

// Run drives the reader until the user quits. Leaving with Escape or an
// interrupt is not an error; configuration problems such as a missing
// document directory are.
func (app *Application) Run(ctx context.Context) error {
	err := app.loop(ctx)
	if errors.Is(err, errQuit) {
		app.logger.Debug("user quit")
		return nil
	}
	return err
}

func (app *Application) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc, err := app.selectDocument()
		if err != nil {
			return err
		}

		sess, err := app.openSession(ctx, doc)
		if err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			continue
		}

		if err := app.actionMenu(ctx, sess); err != nil {
			return err
		}
		app.logger.Debug("back to document selection", "document", doc.Name)
	}
}

// save persists the reading position. Failures are logged and reading goes on.
func (app *Application) save(ctx context.Context, sess *Session) {
	if err := app.store.Save(ctx, sess.Doc.FullPath, sess.Position); err != nil {
		app.logger.Warn("save progress failed", "document", sess.Doc.Name, "page", sess.Position, "err", err)
	}
}

func (app *Application) redraw(text string) error {
	return app.console.Redraw(app.prompt.Prompt() + text)
}

// waitForEnter blocks until Enter. An interrupt quits.
func (app *Application) waitForEnter() error {
	for {
		ev, err := app.console.ReadKey()
		if err != nil {
			return err
		}
		switch ev.Kind {
		case terminal.KeyEnter:
			return nil
		case terminal.KeyCtrlC:
			return errQuit
		}
	}
}
