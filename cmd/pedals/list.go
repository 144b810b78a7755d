package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-pedals/dsp/effectchain"
	"github.com/cwbudde/algo-pedals/dsp/fx"
)

// ListCmd prints the pedal catalogue.
type ListCmd struct{}

// Run implements the list command.
func (c *ListCmd) Run(g *Globals) error {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Pedals"))
	sb.WriteString("\n")

	for _, p := range effectchain.Pedals() {
		proc, err := p.New()
		if err != nil {
			return fmt.Errorf("%s: %w", p.Type, err)
		}

		info := proc.Info()

		sb.WriteString("\n")
		sb.WriteString(typeStyle.Render(p.Type))
		sb.WriteString("  ")
		sb.WriteString(info.Name)
		sb.WriteString(" ")
		sb.WriteString(dimStyle.Render(describe(info)))
		sb.WriteString("\n")

		params, ok := proc.(fx.Parameterized)
		if !ok {
			continue
		}

		for _, prm := range params.Params().All() {
			label := prm.Label
			if label == "" {
				label = prm.Name
			}

			fmt.Fprintf(&sb, "  %s  %s %s\n",
				paramStyle.Render(fmt.Sprintf("%-9s", prm.Name)), label, dimStyle.Render("(default "+prm.Format()+")"))
		}
	}

	_, err := fmt.Fprint(g.out, sb.String())

	return err
}

func describe(info fx.Info) string {
	parts := []string{info.Layout.String()}

	if !info.HasBypass {
		parts = append(parts, "no bypass")
	}

	if info.TailSeconds > 0 {
		parts = append(parts, fmt.Sprintf("tail %.2f s", info.TailSeconds))
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
