package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-pedals/dsp/fx"
)

// StateCmd shows the parameters of every node and the chain snapshot.
type StateCmd struct {
	BoardFlags

	SampleRate float64 `default:"48000" help:"Sample rate the chain is prepared at."`
	Restore    string  `type:"existingfile" help:"Apply a snapshot file before printing."`
	Raw        bool    `help:"Print only the snapshot JSON."`
}

// Run implements the state command.
func (c *StateCmd) Run(g *Globals) error {
	chain, err := c.load(c.SampleRate, g.log)
	if err != nil {
		return err
	}

	if c.Restore != "" {
		data, err := os.ReadFile(c.Restore)
		if err != nil {
			return err
		}

		err = chain.RestoreSnapshot(data)
		if err != nil {
			return err
		}
	}

	snapshot, err := chain.Snapshot()
	if err != nil {
		return err
	}

	if c.Raw {
		_, err = fmt.Fprintln(g.out, string(snapshot))
		return err
	}

	var sb strings.Builder

	for _, id := range chain.NodeIDs() {
		proc, ok := chain.Processor(id)
		if !ok {
			continue
		}

		sb.WriteString(typeStyle.Render(id))
		sb.WriteString("  ")
		sb.WriteString(proc.Info().Name)
		sb.WriteString("\n")

		if params, ok := proc.(fx.Parameterized); ok {
			for _, prm := range params.Params().All() {
				fmt.Fprintf(&sb, "  %s %s\n", paramStyle.Render(fmt.Sprintf("%-9s", prm.Name)), prm.Format())
			}
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("snapshot"))
	sb.WriteString("\n")
	sb.Write(snapshot)
	sb.WriteString("\n")

	_, err = fmt.Fprint(g.out, sb.String())

	return err
}
