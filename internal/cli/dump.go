package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

type projectDump struct {
	Version       string       `yaml:"version"`
	MusicFileName string       `yaml:"music_file_name,omitempty"`
	Settings      settingsDump `yaml:"settings"`
	Scores        []scoreDump  `yaml:"scores"`
}

type settingsDump struct {
	Bpm              float64 `yaml:"bpm"`
	Offset           float64 `yaml:"offset"`
	GridPerSignature int     `yaml:"grid_per_signature"`
	Signature        int     `yaml:"signature"`
}

type scoreDump struct {
	Difficulty string     `yaml:"difficulty"`
	Bars       []barDump  `yaml:"bars,omitempty"`
	Notes      []noteDump `yaml:"notes,omitempty"`
}

type barDump struct {
	Index            int     `yaml:"index"`
	Start            float64 `yaml:"start"`
	GridPerSignature int     `yaml:"grid_per_signature,omitempty"`
	Signature        int     `yaml:"signature,omitempty"`
}

type noteDump struct {
	ID     int     `yaml:"id"`
	Bar    int     `yaml:"bar"`
	Index  int     `yaml:"index"`
	Time   float64 `yaml:"time"`
	Type   string  `yaml:"type"`
	Flick  string  `yaml:"flick,omitempty"`
	Start  int     `yaml:"start,omitempty"`
	Finish int     `yaml:"finish,omitempty"`
	Prev   int     `yaml:"prev,omitempty"`
	Next   int     `yaml:"next,omitempty"`
	Hold   int     `yaml:"hold,omitempty"`
	Params string  `yaml:"params,omitempty"`
}

func newDumpCommand(a *app) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a document as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var only model.Difficulty
			if difficulty != "" {
				d, err := model.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				only = d
			}

			p, err := a.engine.Load(args[0])
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(dumpProject(p, only)); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "Only dump this difficulty (debut, regular, pro, master, master_plus)")
	return cmd
}

// dumpProject converts p; only restricts the scores unless it is
// DifficultyInvalid.
func dumpProject(p *model.Project, only model.Difficulty) projectDump {
	out := projectDump{
		Version:       p.Version.String(),
		MusicFileName: p.MusicFileName,
		Settings: settingsDump{
			Bpm:              p.Settings.GlobalBpm,
			Offset:           p.Settings.StartTimeOffset,
			GridPerSignature: p.Settings.GlobalGridPerSignature,
			Signature:        p.Settings.GlobalSignature,
		},
	}

	for _, s := range p.Scores() {
		if only.Valid() && s.Difficulty != only {
			continue
		}
		sd := scoreDump{Difficulty: s.Difficulty.Key()}
		for _, b := range s.Bars() {
			bd := barDump{Index: b.Index, Start: b.StartTime}
			if b.Params != nil {
				bd.GridPerSignature = b.Params.UserDefinedGridPerSignature
				bd.Signature = b.Params.UserDefinedSignature
			}
			sd.Bars = append(sd.Bars, bd)
		}
		for _, n := range s.Notes() {
			nd := noteDump{
				ID:     int(n.ID),
				Bar:    n.Bar().Index,
				Index:  n.IndexInGrid,
				Time:   n.HitTiming,
				Type:   n.Type.String(),
				Start:  int(n.StartPosition),
				Finish: int(n.FinishPosition),
				Prev:   int(n.PrevFlickOrSlideNoteID),
				Next:   int(n.NextFlickOrSlideNoteID),
				Hold:   int(n.HoldTargetID),
			}
			if n.FlickType != model.FlickNone {
				nd.Flick = n.FlickType.String()
			}
			if n.ExtraParams != nil {
				nd.Params = n.ExtraParams.ToDataString()
			}
			sd.Notes = append(sd.Notes, nd)
		}
		out.Scores = append(out.Scores, sd)
	}
	return out
}
