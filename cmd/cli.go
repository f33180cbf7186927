// SPDX-License-Identifier: MIT
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worshipwaves/WDweb-sub000/internal/audioproc"
	"github.com/worshipwaves/WDweb-sub000/internal/composition"
	"github.com/worshipwaves/WDweb-sub000/internal/config"
	"github.com/worshipwaves/WDweb-sub000/internal/geometry"
	"github.com/worshipwaves/WDweb-sub000/internal/log"
	"github.com/worshipwaves/WDweb-sub000/internal/processing"
	"github.com/worshipwaves/WDweb-sub000/internal/slots"
	"github.com/worshipwaves/WDweb-sub000/internal/transport"
	"github.com/worshipwaves/WDweb-sub000/pkg/build"
)

// stateFlags collects the composition flags shared by the process and
// geometry commands.
type stateFlags struct {
	shape      string
	style      string
	mode       string
	finishX    float64
	finishY    float64
	sections   int
	separation float64
	slotCount  int
	bit        float64
	spacer     float64
	xOffset    float64
	yOffset    float64
	sideMargin float64
	scaleCP    float64
	exponent   float64
	grainAngle float64
	correction string
	corrScale  float64
}

// state builds a composition state from the parsed flags.
func (f *stateFlags) state(cfg *config.Config) (*composition.State, composition.BinningMode, error) {
	shape, err := composition.ParseShape(f.shape)
	if err != nil {
		return nil, 0, err
	}
	style, err := composition.ParseSlotStyle(f.style)
	if err != nil {
		return nil, 0, err
	}
	mode, err := composition.ParseBinningMode(f.mode)
	if err != nil {
		return nil, 0, err
	}
	correction, err := composition.ParseCorrectionMode(f.correction)
	if err != nil {
		return nil, 0, err
	}

	bit := f.bit
	if bit == 0 {
		bit = cfg.Manufacturing.BitDiameter
	}
	spacer := f.spacer
	if spacer == 0 {
		spacer = cfg.Manufacturing.Spacer
	}

	state := &composition.State{
		Shape:                 shape,
		FinishX:               f.finishX,
		FinishY:               f.finishY,
		Sections:              f.sections,
		Separation:            f.separation,
		SlotStyle:             style,
		SlotCount:             f.slotCount,
		BitDiameter:           bit,
		Spacer:                spacer,
		XOffset:               f.xOffset,
		YOffset:               f.yOffset,
		SideMargin:            f.sideMargin,
		ScaleCenterPoint:      f.scaleCP,
		AmplitudeExponent:     f.exponent,
		GrainAngle:            f.grainAngle,
		VisualCorrectionMode:  correction,
		VisualCorrectionScale: f.corrScale,
	}
	return state, mode, nil
}

func (f *stateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.shape, "shape", "circular", "Panel shape (circular, rectangular, diamond)")
	cmd.Flags().StringVar(&f.style, "style", "radial", "Slot style (radial, linear)")
	cmd.Flags().StringVar(&f.mode, "mode", "mean_absolute", "Binning mode (mean_absolute, min_max, continuous)")
	cmd.Flags().Float64Var(&f.finishX, "finish-x", 36, "Finished panel width in inches")
	cmd.Flags().Float64Var(&f.finishY, "finish-y", 36, "Finished panel height in inches")
	cmd.Flags().IntVar(&f.sections, "sections", 1, "Number of physical sections (1-4)")
	cmd.Flags().Float64Var(&f.separation, "separation", 2.0, "Gap between sections in inches")
	cmd.Flags().IntVar(&f.slotCount, "slots", 60, "Total slot count")
	cmd.Flags().Float64Var(&f.bit, "bit", 0, "Bit diameter in inches (0 uses config default)")
	cmd.Flags().Float64Var(&f.spacer, "spacer", 0, "Spacer between slots in inches (0 uses config default)")
	cmd.Flags().Float64Var(&f.xOffset, "x-offset", 0, "Horizontal section offset in inches")
	cmd.Flags().Float64Var(&f.yOffset, "y-offset", 0, "Vertical edge inset in inches")
	cmd.Flags().Float64Var(&f.sideMargin, "side-margin", 1.0, "Side margin for linear layouts in inches")
	cmd.Flags().Float64Var(&f.scaleCP, "scale-center", 1.0, "Center point scale factor")
	cmd.Flags().Float64Var(&f.exponent, "exponent", 1.0, "Amplitude contrast exponent")
	cmd.Flags().Float64Var(&f.grainAngle, "grain", 0, "Material grain angle in degrees")
	cmd.Flags().StringVar(&f.correction, "correction", "off", "Visual correction mode (off, center_adj, nudge_adj)")
	cmd.Flags().Float64Var(&f.corrScale, "correction-scale", 1.0, "Visual correction scale factor")
}

// Execute parses arguments and runs the selected command.
func Execute() error {
	info := build.Get()

	var configPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           info.Name,
		Short:         "Converts audio waveforms into fabrication-ready panel cut patterns",
		Version:       info.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.LevelDebug)
			}
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	rootCmd.AddCommand(newProcessCmd(&configPath))
	rootCmd.AddCommand(newGeometryCmd(&configPath))
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newLevelsCmd())

	rootCmd.SetArgs(os.Args[1:])
	return rootCmd.Execute()
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if level, ok := log.ParseLevel(cfg.LogLevel); ok && log.GetLevel() != log.LevelDebug {
		log.SetLevel(level)
	}
	return cfg, nil
}

func newProcessCmd(configPath *string) *cobra.Command {
	flags := &stateFlags{}
	var (
		stem         string
		sliceStart   float64
		sliceEnd     float64
		silenceDb    float64
		silenceStrat string
		filterAmount float64
		serve        bool
		optimize     bool
	)

	cmd := &cobra.Command{
		Use:   "process <audio.wav>",
		Short: "Process an audio file into a cut pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			state, mode, err := flags.state(cfg)
			if err != nil {
				return err
			}
			strategy, err := audioproc.ParseSilenceStrategy(silenceStrat)
			if err != nil {
				return err
			}

			geom, err := geometry.Solve(state)
			if err != nil {
				return err
			}

			pipeline, err := audioproc.NewPipeline(&cfg.Audio, &cfg.Manufacturing, audioproc.NewWAVSource(), defaultSeparator(stem))
			if err != nil {
				return err
			}

			req := audioproc.Request{
				Path:            args[0],
				Window:          audioproc.TimeWindow{Start: sliceStart, End: sliceEnd},
				Stem:            stem,
				SlotCount:       state.SlotCount,
				Mode:            mode,
				SilenceDb:       silenceDb,
				SilenceStrategy: strategy,
				FilterAmount:    filterAmount,
				Exponent:        state.AmplitudeExponent,
				MaxAmplitude:    geom.MaxAmplitude,
				BitDiameter:     state.BitDiameter,
			}

			if optimize {
				channels, _, err := audioproc.NewWAVSource().Samples(args[0], req.Window)
				if err != nil {
					return err
				}
				mono, err := audioproc.Extract(channels, cfg.Audio.RawSampleCount)
				if err != nil {
					return err
				}
				best, err := audioproc.Optimize(mono, state.SlotCount, mode, &cfg.Audio, false)
				if err != nil {
					return err
				}
				log.Infof("optimizer picked exponent=%.2f filter=%.2f (score %.3f)",
					best.Exponent, best.FilterAmount, best.Score)
				req.Exponent = best.Exponent
				req.FilterAmount = best.FilterAmount
			}

			result, err := pipeline.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			state = state.Clone()
			state.Amplitudes = result.Heights
			polygons, err := slots.Generate(state, geom)
			if err != nil {
				return err
			}

			frame := transport.NewPatternFrame(state, geom, polygons)

			var sink transport.Transport = transport.NewLoggingTransport()
			if serve || cfg.Transport.Enabled {
				sink = transport.NewWebSocketTransport(cfg.Transport.Addr)
			}
			defer sink.Close()
			if err := sink.Send(frame); err != nil {
				return err
			}

			return json.NewEncoder(os.Stdout).Encode(frame)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&stem, "stem", "", "Isolate a stem before processing (e.g. vocals)")
	cmd.Flags().Float64Var(&sliceStart, "slice-start", 0, "Clip start time in seconds")
	cmd.Flags().Float64Var(&sliceEnd, "slice-end", 0, "Clip end time in seconds (0 = end)")
	cmd.Flags().Float64Var(&silenceDb, "silence-db", 0, "Silence threshold in dBFS (0 uses config default)")
	cmd.Flags().StringVar(&silenceStrat, "silence-strategy", "merge_short", "Silence handling (merge_short, drop_short)")
	cmd.Flags().Float64Var(&filterAmount, "filter", 0, "Noise filter fraction")
	cmd.Flags().BoolVar(&serve, "serve", false, "Broadcast the frame on the preview feed")
	cmd.Flags().BoolVar(&optimize, "optimize", false, "Grid-search exponent and filter settings")
	return cmd
}

func newGeometryCmd(configPath *string) *cobra.Command {
	flags := &stateFlags{}
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Solve and print panel geometry for a composition",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			state, _, err := flags.state(cfg)
			if err != nil {
				return err
			}
			geom, err := geometry.Solve(state)
			if err != nil {
				return err
			}
			return json.NewEncoder(os.Stdout).Encode(geom)
		},
	}
	flags.register(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	var sections int
	var style string
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List valid slot counts and margin presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			slotStyle, err := composition.ParseSlotStyle(style)
			if err != nil {
				return err
			}
			state := &composition.State{Sections: sections, SlotStyle: slotStyle}
			counts := slots.ValidSlotCounts(state)
			fmt.Printf("slot counts (%d sections, %s): %v\n", sections, slotStyle, counts)
			fmt.Printf("margin presets: %v\n", slots.MarginPresets())
			return nil
		},
	}
	cmd.Flags().IntVar(&sections, "sections", 1, "Number of sections")
	cmd.Flags().StringVar(&style, "style", "radial", "Slot style")
	return cmd
}

func newLevelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "levels <field>...",
		Short: "Classify changed composition fields into a processing level",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := processing.Classify(processing.ChangeSet(args...))
			fmt.Println(level)
			return nil
		},
	}
}

// defaultSeparator wires the external separation tool only when a stem
// was actually requested.
func defaultSeparator(stem string) audioproc.StemSeparator {
	if strings.TrimSpace(stem) == "" {
		return nil
	}
	return audioproc.NewCommandSeparator("demucs", os.TempDir(), 0)
}
