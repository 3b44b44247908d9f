// Package notify posts deadline digests to a Slack incoming webhook.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
	"github.com/slack-go/slack"
)

// DigestItem is one task worth mentioning.
type DigestItem struct {
	Title   string
	Client  string
	EndDate string
	Days    int
}

// Digest summarises an owner's deadlines for one day.
type Digest struct {
	Owner           string
	Day             time.Time
	Overdue         []DigestItem
	DueSoon         []DigestItem
	OverdueSubtasks int
}

// BuildDigest collects overdue and nearly due tasks from tasks.
func BuildDigest(owner string, tasks []domain.Task, today time.Time, warningDays int) Digest {
	today = calendar.Day(today)
	d := Digest{Owner: owner, Day: today}
	for _, t := range tasks {
		if t.Deleted {
			continue
		}
		ts := t.TimeStatus(warningDays, today)
		if !ts.IsOverdue && !ts.IsWarning {
			continue
		}
		end, _ := calendar.ParseISO(t.EndDate)
		item := DigestItem{Title: t.Title, Client: t.Client, EndDate: t.EndDate, Days: calendar.DaysBetween(today, end)}
		if ts.IsOverdue {
			d.Overdue = append(d.Overdue, item)
		} else {
			d.DueSoon = append(d.DueSoon, item)
		}
	}
	for _, r := range metrics.ActiveSubtaskRows(tasks) {
		if domain.TimeStatus(false, r.EndDate, warningDays, today).IsOverdue {
			d.OverdueSubtasks++
		}
	}
	return d
}

// Empty reports whether there is nothing to send.
func (d Digest) Empty() bool {
	return len(d.Overdue) == 0 && len(d.DueSoon) == 0 && d.OverdueSubtasks == 0
}

// Message renders the digest as a Slack webhook payload.
func (d Digest) Message() *slack.WebhookMessage {
	title := fmt.Sprintf("Deadlines for %s, %s", d.Owner, calendar.FormatISO(d.Day))
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, title, false, false)),
	}
	section := func(heading string, items []DigestItem) {
		if len(items) == 0 {
			return
		}
		var b strings.Builder
		fmt.Fprintf(&b, "*%s*\n", heading)
		for _, it := range items {
			fmt.Fprintf(&b, "• %s", it.Title)
			if it.Client != "" {
				fmt.Fprintf(&b, " (%s)", it.Client)
			}
			fmt.Fprintf(&b, " · %s\n", dueText(it.Days))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, b.String(), false, false), nil, nil))
	}
	section("Försenade", d.Overdue)
	section("Snart klara", d.DueSoon)
	if d.OverdueSubtasks > 0 {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("%d försenade checklistepunkter", d.OverdueSubtasks), false, false)))
	}
	return &slack.WebhookMessage{
		Text:   fmt.Sprintf("%s: %d försenade, %d snart klara", title, len(d.Overdue), len(d.DueSoon)),
		Blocks: &slack.Blocks{BlockSet: blocks},
	}
}

func dueText(days int) string {
	switch {
	case days < 0:
		return fmt.Sprintf("%d dagar sen", -days)
	case days == 0:
		return "idag"
	case days == 1:
		return "i morgon"
	default:
		return fmt.Sprintf("om %d dagar", days)
	}
}
