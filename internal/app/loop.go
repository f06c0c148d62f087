package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	fsutil "github.com/kk-code-lab/shellpage/internal/fs"
	"github.com/kk-code-lab/shellpage/internal/search"
	"github.com/kk-code-lab/shellpage/internal/textutil"
	"github.com/kk-code-lab/shellpage/internal/ui/pager"
	"github.com/kk-code-lab/shellpage/internal/ui/terminal"
)

const (
	choiceContinue = "1"
	choiceKeyword  = "2"
)

// selectDocument cycles through the document list on one line.
func (app *Application) selectDocument() (fsutil.Document, error) {
	docs, err := app.library.List()
	if err != nil {
		return fsutil.Document{}, err
	}
	if len(docs) == 0 {
		return fsutil.Document{}, ErrNoDocuments
	}

	selected := 0
	for {
		name := textutil.SanitizeTerminalText(docs[selected].Name)
		if err := app.redraw(selectLabel + name); err != nil {
			return fsutil.Document{}, err
		}
		ev, err := app.console.ReadKey()
		if err != nil {
			return fsutil.Document{}, err
		}
		switch ev.Kind {
		case terminal.KeyUp:
			selected = (selected - 1 + len(docs)) % len(docs)
		case terminal.KeyDown:
			selected = (selected + 1) % len(docs)
		case terminal.KeyEnter:
			return docs[selected], nil
		case terminal.KeyEscape, terminal.KeyCtrlC:
			return fsutil.Document{}, errQuit
		}
	}
}

// openSession loads and paginates doc and restores its saved position. A
// document that cannot be shown is reported on the line and an error is
// returned so selection resumes.
func (app *Application) openSession(ctx context.Context, doc fsutil.Document) (*Session, error) {
	name := textutil.SanitizeTerminalText(doc.Name)
	lines, err := app.loadLines(doc.FullPath)
	if err != nil {
		app.logger.Warn("load document failed", "document", doc.Name, "err", err)
		return nil, app.report(fmt.Sprintf(loadErrorText, name, err), err)
	}

	width := pager.UsableWidth(app.console.Columns(), app.prompt.Width())
	pages := pager.Paginate(lines, width)
	if len(pages) == 0 {
		app.logger.Info("document has no pages", "document", doc.Name)
		return nil, app.report(fmt.Sprintf(emptyDocText, name), errors.New("empty document"))
	}

	sess := &Session{Doc: doc, Pages: pages}
	if saved, ok := app.store.Load(ctx, doc.FullPath); ok && saved < len(pages) {
		sess.Position = saved
	}
	app.logger.Debug("document loaded",
		"document", doc.Name, "lines", len(lines), "pages", len(pages), "width", width, "position", sess.Position)
	return sess, nil
}

// report shows msg until Enter and returns cause, or errQuit on interrupt.
func (app *Application) report(msg string, cause error) error {
	if err := app.redraw(notice(msg)); err != nil {
		return err
	}
	if err := app.waitForEnter(); err != nil {
		return err
	}
	return cause
}

// actionMenu offers continuing to read or jumping to a keyword. It returns
// nil when the user goes back to document selection.
func (app *Application) actionMenu(ctx context.Context, sess *Session) error {
	for {
		if err := app.console.Clear(); err != nil {
			return err
		}
		choice, err := app.console.ReadLine(app.prompt.Prompt()+menuLabel, true)
		if err != nil {
			return app.lineError(ctx, sess, err)
		}

		switch strings.TrimSpace(choice) {
		case "":
			continue
		case choiceContinue:
			err = app.read(ctx, sess)
		case choiceKeyword:
			err = app.searchThenRead(ctx, sess)
		default:
			err = app.invalidChoice(choice)
		}
		if err != nil && !errors.Is(err, terminal.ErrBack) {
			return err
		}
	}
}

// lineError maps the outcome of a line prompt. Back is returned as nil;
// quitting saves the position first.
func (app *Application) lineError(ctx context.Context, sess *Session, err error) error {
	switch {
	case errors.Is(err, terminal.ErrBack):
		return nil
	case errors.Is(err, terminal.ErrQuit), errors.Is(err, terminal.ErrInterrupted):
		app.save(ctx, sess)
		return errQuit
	default:
		return err
	}
}

func (app *Application) invalidChoice(choice string) error {
	msg := fmt.Sprintf(invalidText, textutil.SanitizeTerminalText(choice))
	if err := app.redraw(notice(msg)); err != nil {
		return err
	}
	app.sleep(app.menuPause)
	return nil
}

// read is the reading loop shared by the menu and keyword search. The
// position is saved after every key.
func (app *Application) read(ctx context.Context, sess *Session) error {
	for {
		if err := app.redraw(sess.Page()); err != nil {
			return err
		}
		ev, err := app.console.ReadKey()
		if err != nil {
			app.save(ctx, sess)
			return err
		}

		switch ev.Kind {
		case terminal.KeyUp:
			sess.Step(-1)
		case terminal.KeyDown:
			sess.Step(1)
		case terminal.KeyEscape, terminal.KeyCtrlC:
			app.save(ctx, sess)
			return errQuit
		case terminal.KeyChar:
			if ev.Rune == terminal.BackKey {
				app.save(ctx, sess)
				return app.console.Clear()
			}
		}
		app.save(ctx, sess)
	}
}

// searchThenRead asks for a keyword, jumps to the next page containing it
// and continues in the reading loop.
func (app *Application) searchThenRead(ctx context.Context, sess *Session) error {
	keyword, err := app.console.ReadLine(app.prompt.Prompt()+keywordLabel, true)
	if err != nil {
		return app.lineError(ctx, sess, err)
	}
	if keyword == "" {
		return nil
	}

	page, ok := search.FindPage(sess.Pages, keyword, sess.Position)
	if !ok {
		app.logger.Debug("keyword not found", "document", sess.Doc.Name, "from", sess.Position)
		if err := app.redraw(notice(notFoundText)); err != nil {
			return err
		}
		if err := app.waitForEnter(); err != nil {
			if errors.Is(err, errQuit) {
				app.save(ctx, sess)
			}
			return err
		}
		return app.console.Clear()
	}

	sess.Position = page
	app.save(ctx, sess)
	return app.read(ctx, sess)
}
