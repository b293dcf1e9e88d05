package controllers

import (
	"errors"
	"fmt"
	"math"
	"shoutd/internal/models"
	"shoutd/internal/providers"
	"shoutd/internal/services"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultRecentCount = 10
	maxRecentCount     = 50
)

// Reply is what a command produces: lines for the caller and lines for
// every connected session.
type Reply struct {
	Private   []string
	Broadcast []string
}

func (r *Reply) tell(format string, args ...any) {
	r.Private = append(r.Private, fmt.Sprintf(format, args...))
}

// CommandController turns chat command lines into engine calls and replies.
// It knows nothing about the host that delivers the lines.
type CommandController struct {
	service  services.ShoutoutServiceInterface
	settings providers.SettingsProviderInterface
	logger   providers.Logger
	printer  *message.Printer
}

func NewCommandController(service services.ShoutoutServiceInterface, settings providers.SettingsProviderInterface, logger providers.Logger) *CommandController {
	return &CommandController{
		service:  service,
		settings: settings,
		logger:   logger,
		printer:  message.NewPrinter(language.English),
	}
}

// Handle dispatches one line typed by actor. Lines that are not commands
// are ignored.
func (cc *CommandController) Handle(actor, line string, now time.Time) Reply {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Reply{}
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "/shoutout":
		return cc.Shoutout(actor, rest, now)
	case "/shoutouts":
		return cc.View(rest)
	case "/shoutoutadmin":
		return cc.Admin(rest)
	case "/leave":
		cc.service.Forget(actor)
		return Reply{}
	}
	var r Reply
	r.tell("Unknown command: %s", name)
	return r
}

func (cc *CommandController) Shoutout(actor, text string, now time.Time) Reply {
	var r Reply
	if text == "" {
		r.tell("Usage: /shoutout <message>")
		return r
	}

	res := cc.service.Submit(actor, text, now)
	switch res.Status {
	case models.StatusAccepted:
		r.Broadcast = append(r.Broadcast, fmt.Sprintf("%s: %s", res.Entry.Actor, res.Entry.Text))
		r.tell("Your shoutout has been logged!")
	case models.StatusRejectedCooldown:
		r.tell("Please wait %d seconds before sending another shoutout.", int(math.Ceil(res.Wait.Seconds())))
	case models.StatusRejectedQuota:
		r.tell("You have reached the daily limit of %d shoutouts. Try again tomorrow.", cc.service.Limits().MaxEventsPerDay)
	case models.StatusRejectedInvalid:
		if errors.Is(res.Reason, models.ErrEmptyText) {
			r.tell("Usage: /shoutout <message>")
		} else {
			r.tell("Your name cannot be used for shoutouts.")
		}
	case models.StatusFailed:
		r.tell("There was an error processing your shoutout.")
	}
	return r
}

// View answers /shoutouts [n].
func (cc *CommandController) View(arg string) Reply {
	var r Reply
	n := defaultRecentCount
	if arg != "" {
		parsed, err := strconv.Atoi(arg)
		if err != nil {
			r.tell("Invalid number format. Usage: /shoutouts [number]")
			return r
		}
		n = parsed
	}
	if n < 1 || n > maxRecentCount {
		r.tell("Number of shoutouts must be between 1 and %d.", maxRecentCount)
		return r
	}

	lines, err := cc.service.Recent(n)
	if err != nil {
		cc.logger.Errorf(providers.TypeRead, "Error reading shoutouts: %s", err)
		r.tell("An error occurred while reading shoutouts.")
		return r
	}
	if len(lines) == 0 {
		r.tell("No shoutouts found.")
		return r
	}
	r.tell("=== Last %d Shoutout(s) ===", len(lines))
	r.Private = append(r.Private, lines...)
	return r
}

func (cc *CommandController) Admin(args string) Reply {
	var r Reply
	sub, rest, _ := strings.Cut(args, " ")
	switch strings.ToLower(sub) {
	case "stats":
		return cc.stats()
	case "config":
		return cc.config(strings.TrimSpace(rest))
	case "clear":
		cc.service.ClearCache()
		r.tell("Shoutout cache cleared.")
	case "":
		r.tell("Usage: /shoutoutadmin <stats|config|clear>")
	default:
		r.tell("Invalid command. Use stats, config, or clear.")
	}
	return r
}

func (cc *CommandController) stats() Reply {
	var r Reply
	view := cc.service.Stats()
	r.tell("=== Shoutout Statistics ===")
	r.Private = append(r.Private, cc.printer.Sprintf("Total Shoutouts: %d", view.TotalCount))
	r.tell("Top Users:")
	for _, u := range view.TopActors {
		r.Private = append(r.Private, cc.printer.Sprintf("- %s: %d", u.Actor, u.Count))
	}
	r.tell("Peak Hours:")
	for _, h := range view.PeakHours {
		r.tell("- %02d:00", h)
	}
	return r
}

func (cc *CommandController) config(args string) Reply {
	var r Reply
	if args == "" {
		r.tell("=== Current Configuration ===")
		for _, name := range cc.settings.Names() {
			value, _ := cc.settings.Get(name)
			r.tell("%s: %s", name, value)
		}
		return r
	}

	name, value, _ := strings.Cut(args, " ")
	value = strings.TrimSpace(value)
	if value == "" {
		r.tell("Please provide a value for the setting.")
		return r
	}

	err := cc.settings.Set(name, value)
	switch {
	case err == nil:
		cc.logger.Infof(providers.TypeApp, "Setting %s changed to %q", name, value)
		r.tell("Successfully updated %s to %s", name, value)
	case errors.Is(err, providers.ErrUnknownSetting):
		r.tell("Invalid setting: %s", name)
	default:
		r.tell("Invalid value for %s: %s", name, err)
	}
	return r
}
