package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/greenops/carbonscan/internal/detect"
	"github.com/greenops/carbonscan/internal/gridzone"
	"github.com/greenops/carbonscan/internal/recommend"
	"github.com/greenops/carbonscan/internal/report"
)

// scanPayload is the scan command's JSON output.
type scanPayload struct {
	Detections []detect.EnrichedDeployment `json:"detections"`
	Summary    report.Summary              `json:"summary"`
}

// recommendPayload is the recommend command's JSON output.
type recommendPayload struct {
	Summary report.Summary            `json:"summary"`
	Savings recommend.SavingsEstimate `json:"savings"`
}

// zonesPayload is the zones command's JSON output.
type zonesPayload struct {
	Stats   gridzone.IntensityStats    `json:"stats"`
	Ranking []gridzone.ZoneIntensity   `json:"ranking,omitempty"`
	Regions []gridzone.RegionIntensity `json:"regions,omitempty"`
}

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "scan a source tree for cloud deployments and their grid carbon intensity",
		ArgsUsage: "[directory]",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.BoolFlag{
				Name:  "save",
				Usage: "append the batch to the configured detection store",
			},
			&cli.StringFlag{
				Name:  "project",
				Usage: "project id recorded with saved batches",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd)
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			table := gridzone.NewTable(logger)
			scanner := detect.NewScanner(table, logger, detect.WithSkipDirs(cfg.SkipDirs...))

			root := cmd.Args().First()
			if root == "" {
				root = "."
			}

			detections := scanner.ScanDirectory(root)
			payload := scanPayload{
				Detections: detections,
				Summary:    report.Summarize(detections),
			}

			if cmd.Bool("save") {
				storePath := cfg.Store
				if storePath == "" {
					storePath = "carbonscan-detections.jsonl"
				}
				projectID := cmd.String("project")
				if projectID == "" {
					projectID = cfg.ProjectID
				}
				store := report.NewJSONLinesStore(storePath, logger)
				if err := store.Save(ctx, detections, projectID, root); err != nil {
					return err
				}
			}

			return writeJSON(cmd.String("output"), payload)
		},
	}
}

func recommendCmd() *cli.Command {
	return &cli.Command{
		Name:      "recommend",
		Usage:     "suggest lower-carbon regions for detected deployments",
		ArgsUsage: "[directory]",
		Flags:     []cli.Flag{outputFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd)
			cfg, err := loadConfig(cmd.String("config"))
			if err != nil {
				return err
			}

			table := gridzone.NewTable(logger)
			scanner := detect.NewScanner(table, logger, detect.WithSkipDirs(cfg.SkipDirs...))
			engine := recommend.NewEngine(table, logger)

			root := cmd.Args().First()
			if root == "" {
				root = "."
			}

			detections := scanner.ScanDirectory(root)
			payload := recommendPayload{
				Summary: report.Summarize(detections),
				Savings: engine.CalculatePotentialSavings(detections),
			}

			return writeJSON(cmd.String("output"), payload)
		},
	}
}

func zonesCmd() *cli.Command {
	return &cli.Command{
		Name:  "zones",
		Usage: "show grid zone intensity rankings and statistics",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.StringFlag{
				Name:  "provider",
				Usage: "rank regions of one provider instead of all grid zones",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "limit provider region ranking to the N lowest-carbon entries",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger := newLogger(cmd)
			table := gridzone.NewTable(logger)

			payload := zonesPayload{Stats: table.Stats()}
			if provider := cmd.String("provider"); provider != "" {
				payload.Regions = table.LowestCarbonRegions(provider, cmd.Int("top"))
			} else {
				payload.Ranking = table.RankZonesByIntensity()
			}

			return writeJSON(cmd.String("output"), payload)
		},
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "write JSON output to a file instead of stdout",
	}
}

// writeJSON renders v as indented JSON to stdout or the given file.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %q: %w", path, err)
	}
	return nil
}
