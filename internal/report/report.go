// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

// Package report renders password evaluations for the console.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/alvinbaena/pwd-strength/internal/strength"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Entropy at which the meter is full.
const meterFullBits = 100

const meterWidth = 30

type Options struct {
	ShowTime bool
	Meter    bool
}

type labelStyle struct {
	emoji string
	color lipgloss.Color
}

var labelStyles = map[strength.Label]labelStyle{
	strength.Weak:       {"🔴", lipgloss.Color("9")},
	strength.Acceptable: {"🟡", lipgloss.Color("11")},
	strength.Strong:     {"🟢", lipgloss.Color("10")},
}

func styleFor(label strength.Label) labelStyle {
	if s, ok := labelStyles[label]; ok {
		return s
	}
	return labelStyle{"⚪", lipgloss.Color("7")}
}

// Label renders the label with its emoji and color.
func Label(label strength.Label) string {
	s := styleFor(label)
	return lipgloss.NewStyle().Bold(true).Foreground(s.color).Render(s.emoji + " " + label.String())
}

// Meter renders a bar filled in proportion to the entropy.
func Meter(r strength.Result) string {
	bar := progress.New(
		progress.WithSolidFill(string(styleFor(r.Label).color)),
		progress.WithWidth(meterWidth),
		progress.WithoutPercentage(),
	)
	return bar.ViewAs(math.Min(r.Entropy/meterFullBits, 1))
}

// Render writes the analysis of one password. The password itself is never printed.
func Render(w io.Writer, r strength.Result, opts Options) error {
	var b strings.Builder

	b.WriteString("\nPassword Analysis:\n")
	fmt.Fprintf(&b, "- Password: %s\n", strings.Repeat("*", r.Length))
	fmt.Fprintf(&b, "- Character pool: %d (%s)\n", r.PoolSize, r.Classes)
	fmt.Fprintf(&b, "- Entropy: %.2f bits\n", r.Entropy)
	if opts.Meter {
		fmt.Fprintf(&b, "- Meter: %s\n", Meter(r))
	}
	if opts.ShowTime {
		fmt.Fprintf(&b, "- Estimated Brute-force Time: %s (%s at %s guesses/s)\n",
			strength.FormatTime(r.Seconds), strength.ApproxTime(r.Seconds), humanize.Commaf(r.AttackRate))
	}
	if r.Denylisted {
		b.WriteString("- Common password: yes\n")
	}
	fmt.Fprintf(&b, "- Pattern score: %d/4 (pattern crack time: %s)\n", r.Pattern.Score, r.Pattern.CrackTimeDisplay)
	fmt.Fprintf(&b, "- Strength: %s\n", Label(r.Label))

	_, err := io.WriteString(w, b.String())
	return err
}
