package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/music"
)

func newInfoCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show a summary of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.info(cmd, args[0])
		},
	}
}

func (a *app) info(cmd *cobra.Command, path string) error {
	stat, err := os.Stat(path)
	if err != nil {
		return err
	}
	p, report, err := a.engine.LoadWithReport(path, beatmapdoc.AutoVersion)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s (%s)\n", path, humanize.Bytes(uint64(stat.Size())))
	fmt.Fprintf(out, "Version:     %s\n", p.Version)
	fmt.Fprintf(out, "Music:       %s\n", describeMusic(path, p.MusicFileName))
	fmt.Fprintf(out, "BPM:         %s\n", humanize.Ftoa(p.Settings.GlobalBpm))
	fmt.Fprintf(out, "Offset:      %ss\n", humanize.Ftoa(p.Settings.StartTimeOffset))
	fmt.Fprintf(out, "Grid:        %d x %d\n", p.Settings.GlobalGridPerSignature, p.Settings.GlobalSignature)
	if p.IsChanged {
		fmt.Fprintf(out, "Upgrade:     saving will rewrite this file as %s\n", model.CurrentVersion)
	}
	if report.Len() > 0 {
		fmt.Fprintf(out, "Diagnostics: %s\n", humanize.Comma(int64(report.Len())))
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DIFFICULTY\tBARS\tNOTES\tSPECIAL\tLENGTH")
	for _, s := range p.Scores() {
		var length time.Duration
		if bars := s.Bars(); len(bars) > 0 {
			last := bars[len(bars)-1]
			length = time.Duration((last.EndTime - p.Settings.StartTimeOffset) * float64(time.Second))
		}
		special := len(s.SpecialNotes())
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n",
			s.Difficulty, len(s.Bars()), humanize.Comma(int64(len(s.Notes())-special)), special, length.Round(time.Millisecond))
	}
	return w.Flush()
}

func describeMusic(documentPath, musicFileName string) string {
	if musicFileName == "" {
		return "(none)"
	}
	md, err := music.ReadMetadata(music.ResolvePath(documentPath, musicFileName))
	if err != nil {
		return fmt.Sprintf("%s (unreadable: %v)", musicFileName, err)
	}
	return fmt.Sprintf("%s (%s, %s Hz, %d ch)", musicFileName,
		md.Duration.Round(time.Millisecond), humanize.Comma(int64(md.SampleRate)), md.Channels)
}
