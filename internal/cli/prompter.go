package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shuv1824/packlist/internal/services/trip"
)

// Prompter asks the traveller for trip details on a terminal.
type Prompter struct {
	in  *NonBlockingReader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: NewNonBlockingReader(in), out: out}
}

// CollectTrip fills in whatever t is missing. Values already set are kept.
func (p *Prompter) CollectTrip(ctx context.Context, t trip.Trip) (trip.Trip, error) {
	var err error

	if strings.TrimSpace(t.Name) == "" {
		if t.Name, err = p.askRequired(ctx, "What's your name? "); err != nil {
			return t, err
		}
	}

	if strings.TrimSpace(t.Destination) == "" {
		if t.Destination, err = p.askRequired(ctx, "Where are you headed? "); err != nil {
			return t, err
		}
	}

	if t.Duration == 0 {
		if t.Duration, err = p.askDuration(ctx); err != nil {
			return t, err
		}
	}

	return t, nil
}

// Confirm asks a yes/no question; anything but y/yes counts as no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprint(p.out, PromptStyle.Render(question+" [y/N] "))

	answer, err := p.in.ReadLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) askRequired(ctx context.Context, question string) (string, error) {
	for {
		fmt.Fprint(p.out, PromptStyle.Render(question))

		answer, err := p.in.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}

		fmt.Fprintln(p.out, WarningStyle.Render("Please enter a value."))
	}
}

func (p *Prompter) askDuration(ctx context.Context) (int, error) {
	for {
		fmt.Fprint(p.out, PromptStyle.Render("How many days is the trip? (1-16) "))

		answer, err := p.in.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		days, err := strconv.Atoi(answer)
		if err == nil && days >= 1 && days <= 16 {
			return days, nil
		}

		fmt.Fprintln(p.out, WarningStyle.Render("Please enter a whole number of days between 1 and 16."))
	}
}
