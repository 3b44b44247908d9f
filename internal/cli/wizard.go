package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// taskDraft collects the fields of a new task as strings.
type taskDraft struct {
	Title  string
	Client string
	Phase  string
	Start  string
	End    string
	Status string
	Tags   string
}

func (d taskDraft) task() domain.Task {
	return domain.Task{
		Title:     strings.TrimSpace(d.Title),
		Client:    strings.TrimSpace(d.Client),
		Phase:     strings.TrimSpace(d.Phase),
		StartDate: strings.TrimSpace(d.Start),
		EndDate:   strings.TrimSpace(d.End),
		Status:    domain.Status(d.Status),
		Tags:      splitTags(d.Tags),
	}
}

// taskForm asks for the fields of a new task. Values already in d are
// offered as defaults.
func taskForm(d *taskDraft, clients, phases []string) *huh.Form {
	if d.Status == "" {
		d.Status = string(domain.StatusPlanned)
	}
	statuses := make([]huh.Option[string], 0, len(domain.SelectableStatuses))
	for _, s := range domain.SelectableStatuses {
		statuses = append(statuses, huh.NewOption(string(s), string(s)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Titel").Value(&d.Title).Validate(validateRequired),
			huh.NewInput().Title("Kund").Value(&d.Client).Suggestions(clients),
			huh.NewInput().Title("Fas").Value(&d.Phase).Suggestions(phases),
		),
		huh.NewGroup(
			dateInput("Startdatum (YYYY-MM-DD)", &d.Start, true),
			dateInput("Slutdatum (YYYY-MM-DD)", &d.End, true),
			huh.NewSelect[string]().Title("Status").Options(statuses...).Value(&d.Status),
			huh.NewInput().Title("Taggar").Description("Kommaseparerade").Value(&d.Tags),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func dateInput(title string, value *string, required bool) *huh.Input {
	validate := validateOptionalDate
	if required {
		validate = func(s string) error {
			if err := validateRequired(s); err != nil {
				return err
			}
			return validateOptionalDate(s)
		}
	}
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(validate)
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("required")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := calendar.ParseISO(strings.TrimSpace(s)); !ok {
		return errors.New("use YYYY-MM-DD format")
	}
	return nil
}

// confirmForm asks a yes/no question.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Ja").
				Negative("Nej").
				Value(result),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

func splitTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
