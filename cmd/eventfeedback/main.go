package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"eventfeedback/internal/config"
	"eventfeedback/internal/logger"
	"eventfeedback/pkg/feedback"
	"eventfeedback/pkg/gateway"
	"eventfeedback/pkg/session"
)

// eventfeedback is the terminal client: log in, leave feedback for events,
// and view or rework your submissions while their edit window is open.
func main() {
	config.Load() // optional .env
	baseURL := config.MustGet("FEEDBACK_API_URL")

	logger := logger.Load()

	sess := session.NewStore()
	gw := gateway.New(baseURL, sess, logger)
	if raw := config.Get("FEEDBACK_HTTP_TIMEOUT", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			gw.HTTP.Timeout = d
		}
	}

	manager := feedback.NewManager(gw, feedback.NewCache(), logger)

	app := &app{
		sess:    sess,
		gw:      gw,
		manager: manager,
		in:      bufio.NewScanner(os.Stdin),
	}
	app.run()
}

type app struct {
	sess    *session.Store
	gw      *gateway.Client
	manager *feedback.Manager
	in      *bufio.Scanner
}

func (a *app) run() {
	fmt.Println("EventFeedback - type 'help' for commands")

	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		line := strings.Fields(strings.TrimSpace(a.in.Text()))
		if len(line) == 0 {
			continue
		}

		ctx := context.Background()
		switch line[0] {
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout()
		case "whoami":
			a.whoami()
		case "submit":
			a.submit(ctx)
		case "history":
			a.history(ctx)
		case "edit":
			a.edit(ctx, line[1:])
		case "delete":
			a.delete(ctx, line[1:])
		case "watch":
			a.watch()
		case "help":
			printHelp()
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command, type 'help'")
		}
	}
}

func printHelp() {
	fmt.Println(`commands:
  register        create an account
  login           log in and load your feedback history
  logout          drop the session
  whoami          show the logged-in account
  submit          leave feedback for an event
  history         list your feedback with remaining edit time
  edit <n>        edit entry n from history (while its window is open)
  delete <n>      delete entry n from history
  watch           live countdown of edit windows (Enter to stop)
  quit            exit`)
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) register(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	if err := a.gw.Register(ctx, email, password); err != nil {
		a.report(err)
		return
	}
	fmt.Println("account created, you can log in now")
}

func (a *app) login(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	token, err := a.gw.Login(ctx, email, password)
	if err != nil {
		a.report(err)
		return
	}

	// A new session never inherits the previous session's records.
	a.manager.Reset()
	a.sess.Set(token)

	if err := a.manager.Refresh(ctx); err != nil {
		a.report(err)
		return
	}
	fmt.Printf("logged in as %s (%d feedback entries)\n", email, a.manager.Cache.Len())
}

func (a *app) logout() {
	a.sess.Clear()
	a.manager.Reset()
	fmt.Println("logged out")
}

func (a *app) whoami() {
	if !a.sess.Authenticated() {
		fmt.Println("not logged in")
		return
	}
	fmt.Printf("logged in as %s", a.sess.Email())
	if exp := a.sess.ExpiresAt(); !exp.IsZero() {
		fmt.Printf(", session expires %s", exp.Format(time.Kitchen))
	}
	fmt.Println()
}

func (a *app) submit(ctx context.Context) {
	draft := a.manager.CurrentDraft()
	if draft.Event != "" {
		fmt.Printf("retrying draft for %q (Enter keeps previous values)\n", draft.Event)
	}

	event := orDefault(a.prompt("event: "), draft.Event)
	comment := orDefault(a.prompt("comment (optional): "), draft.Comment)
	rating := promptRating(a, draft.Rating)

	if _, err := a.manager.Submit(ctx, event, comment, rating); err != nil {
		a.report(err)
		return
	}
	fmt.Printf("feedback submitted, editable for %s\n", feedback.EditWindow)
}

func (a *app) history(ctx context.Context) {
	if err := a.manager.Refresh(ctx); err != nil {
		a.report(err)
		return
	}

	records := a.manager.Cache.List()
	if len(records) == 0 {
		fmt.Println("no feedback submitted yet")
		return
	}

	remaining := a.manager.RemainingAll()
	for i, rec := range records {
		fmt.Printf("%2d. %s  %s", i+1, rec.Event, stars(rec.Rating))
		if rec.Comment != "" {
			fmt.Printf("  %q", rec.Comment)
		}
		if left := remaining[rec.ID]; left > 0 {
			fmt.Printf("  [editable %s more]", left.Round(time.Second))
		} else {
			fmt.Print("  [locked]")
		}
		fmt.Println()
	}
}

func (a *app) edit(ctx context.Context, args []string) {
	rec, ok := a.recordByIndex(args)
	if !ok {
		return
	}

	if err := a.manager.BeginEdit(rec.ID); err != nil {
		a.report(err)
		return
	}

	edit, _ := a.manager.Editing()
	fmt.Printf("editing %q (Enter keeps current value)\n", rec.Event)
	comment := orDefault(a.prompt(fmt.Sprintf("comment [%s]: ", edit.Comment)), edit.Comment)
	rating := promptRating(a, edit.Rating)

	if _, err := a.manager.CommitEdit(ctx, rec.ID, comment, rating); err != nil {
		a.manager.CancelEdit()
		a.report(err)
		return
	}
	fmt.Println("feedback updated")
}

func (a *app) delete(ctx context.Context, args []string) {
	rec, ok := a.recordByIndex(args)
	if !ok {
		return
	}

	if err := a.manager.Delete(ctx, rec.ID); err != nil {
		a.report(err)
		return
	}
	fmt.Println("feedback deleted")
}

// watch streams the edit-window countdown once a second until the user
// presses Enter. Pure recomputation from the cache, no network traffic.
func (a *app) watch() {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		a.in.Scan()
		cancel()
	}()

	fmt.Println("watching edit windows, press Enter to stop")
	a.manager.Watch(ctx, time.Second, func(remaining map[string]time.Duration) {
		open := 0
		for _, left := range remaining {
			if left > 0 {
				open++
			}
		}
		fmt.Printf("\r%d of %d entries still editable ", open, len(remaining))
	})
	fmt.Println()
}

func (a *app) recordByIndex(args []string) (feedback.Record, bool) {
	if len(args) != 1 {
		fmt.Println("usage: edit|delete <n> (run 'history' first)")
		return feedback.Record{}, false
	}
	n, err := strconv.Atoi(args[0])
	records := a.manager.Cache.List()
	if err != nil || n < 1 || n > len(records) {
		fmt.Println("no such entry, run 'history' to see numbers")
		return feedback.Record{}, false
	}
	return records[n-1], true
}

// report translates the error taxonomy into what the user should do next.
func (a *app) report(err error) {
	var validation *feedback.ValidationError
	var remote *gateway.RemoteError
	var transport *gateway.TransportError

	switch {
	case errors.As(err, &validation):
		fmt.Printf("%s: %s\n", validation.Field, validation.Msg)
	case errors.Is(err, feedback.ErrNotEditable):
		fmt.Println("the 5-minute edit window for this entry has closed")
	case errors.Is(err, feedback.ErrInProgress):
		fmt.Println("still working on the previous request, try again in a moment")
	case errors.Is(err, feedback.ErrNotFound):
		fmt.Println("that entry is gone, run 'history' to reload")
	case errors.Is(err, gateway.ErrUnauthenticated):
		a.sess.Clear()
		a.manager.Reset()
		fmt.Println("session expired, please log in again")
	case errors.As(err, &remote):
		fmt.Println(remote.Message)
	case errors.As(err, &transport):
		fmt.Println("could not reach the feedback service, please try again")
	default:
		fmt.Println("unexpected error:", err)
	}
}

func orDefault(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}

func promptRating(a *app, current int) int {
	label := "rating (1-5): "
	if current != 0 {
		label = fmt.Sprintf("rating (1-5) [%d]: ", current)
	}
	raw := a.prompt(label)
	if raw == "" {
		return current
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0 // fails validation with a field message
	}
	return n
}

func stars(rating int) string {
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}
