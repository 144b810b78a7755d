// Command pedals runs the built-in guitar pedals on WAV files and live
// output.
//
// Usage:
//
//	pedals [flags] <command> [args]
//
// Commands:
//
//	list     show every pedal type with its parameters
//	render   run a WAV file through a pedal graph and write the result
//	tune     print tuner readings for a WAV file
//	state    print node parameters and the chain snapshot
//	play     play a WAV file through a pedal graph
//
// Examples:
//
//	pedals list
//	pedals render --pedal rat --pedal analog-delay --set rat.drive=0.8 in.wav out.wav
//	pedals render --graph board.json in.wav out.wav
//	pedals tune --flats guitar.wav
//	pedals play --graph board.json --loop riff.wav
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"
)

// Globals is shared by every command.
type Globals struct {
	Verbose bool `short:"v" help:"Log debug messages, including graph node lifecycle."`

	log *logrus.Logger
	out io.Writer
}

// CLI is the command tree.
type CLI struct {
	Globals

	List   ListCmd   `cmd:"" help:"List the built-in pedals and their parameters."`
	Render RenderCmd `cmd:"" help:"Run a WAV file through a pedal graph."`
	Tune   TuneCmd   `cmd:"" help:"Print tuner readings for a WAV file."`
	State  StateCmd  `cmd:"" help:"Print node parameters and the chain snapshot."`
	Play   PlayCmd   `cmd:"" help:"Play a WAV file through a pedal graph."`
}

func newLogger(verbose bool, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}

	return l
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("pedals"),
		kong.Description("Guitar pedal emulations on a JSON effect graph."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cli.log = newLogger(cli.Verbose, os.Stderr)
	cli.out = os.Stdout

	err := ctx.Run(&cli.Globals)
	if err != nil {
		cli.log.WithError(err).Error(ctx.Command())
		os.Exit(1)
	}
}
