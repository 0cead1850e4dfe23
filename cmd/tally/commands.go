package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/spektr-org/tally/engine"
	"github.com/spektr-org/tally/helpers"
)

// ============================================================================
// SUBCOMMANDS — one per engine operation
// ============================================================================

func (a *app) evensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evens <exclusive-upper-bound>",
		Short: "Even numbers in [1, bound)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid bound %q", args[0])
			}

			evens, err := engine.EvenNumbers(bound)
			if err != nil {
				return err
			}
			a.logger.Debug().Int("bound", bound).Int("count", len(evens)).Msg("generated even numbers")

			return a.render(cmd, output{
				Command: "evens",
				Input:   map[string]any{"exclusiveUpperBound": bound},
				Result:  evens,
				Table:   engine.BuildNumberTable(fmt.Sprintf("Even numbers below %d", bound), evens),
			})
		},
	}
}

func (a *app) squaresCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "squares <exclusive-upper-bound>",
		Short: "Squares of multiples of a divisor in (0, bound), largest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bound, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return errors.Wrapf(err, "invalid bound %q", args[0])
			}
			divisor := a.v.GetInt32("divisor")

			var squares []int32
			if divisor == 7 {
				squares, err = engine.SquaresOfMultiplesOf7(int32(bound))
			} else {
				squares, err = engine.SquaresOfMultiples(divisor, int32(bound))
			}
			if err != nil {
				return err
			}
			a.logger.Debug().Int64("bound", bound).Int32("divisor", divisor).Int("count", len(squares)).Msg("generated squares")

			return a.render(cmd, output{
				Command: "squares",
				Input:   map[string]any{"exclusiveUpperBound": bound, "divisor": divisor},
				Result:  squares,
				Table:   engine.BuildNumberTable(fmt.Sprintf("Squares of multiples of %d below %d", divisor, bound), squares),
			})
		},
	}
	cmd.Flags().Int32("divisor", 7, "Keep only numbers divisible by this value")
	return cmd
}

func (a *app) familiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "families",
		Short: "Member count and average age per family from a CSV or JSON file",
		Long: `Reads one person per CSV row (or JSON array element) and prints one
summary per family, in the order families first appear. A row with an empty
age declares a family without members.

  family,age
  1,34
  1,36
  2,

  [{"family": 1, "age": 34}, {"family": 1, "age": 36}, {"family": 2}]

Files ending in .json are read as JSON; use --input-format to override.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.v.GetString("file")
			if path == "" {
				return errors.New("--file is required")
			}
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			format, err := inputFormat(a.v.GetString("input-format"), path)
			if err != nil {
				return err
			}
			parse := helpers.ParseFamiliesCSV
			if format == "json" {
				parse = helpers.ParseFamiliesJSON
			}
			families, err := parse(data, a.v.GetString("family-column"), a.v.GetString("age-column"))
			if err != nil {
				return errors.Wrapf(err, "failed to parse %s", path)
			}
			a.logger.Info().Str("file", path).Str("format", format).Int("families", len(families)).Msg("parsed families")

			summaries, err := engine.FamilyStatistic(families, engine.WithPrecision(a.v.GetUint32("precision")))
			if err != nil {
				return err
			}

			return a.render(cmd, output{
				Command: "families",
				Input:   map[string]any{"file": path},
				Result:  summaries,
				Table:   engine.BuildFamilyTable("Family statistic", summaries),
			})
		},
	}
	flags := cmd.Flags()
	flags.String("file", "", "CSV or JSON file with one person per row (- for stdin)")
	flags.String("input-format", "", "csv or json (default: by file extension, else csv)")
	flags.String("family-column", "family", "Column holding the family identifier")
	flags.String("age-column", "age", "Column holding the person's age")
	flags.Uint32("precision", engine.DefaultPrecision, "Significant digits of average ages")
	return cmd
}

func (a *app) lettersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "letters [text...]",
		Short: "Case-insensitive A–Z letter frequencies",
		Long: `Counts letters A–Z in the text given as arguments, in --file, or on
stdin when neither is present. Everything else is ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// --file is read from the flag set only: the "file" key in env and
			// config belongs to the families command.
			path, err := cmd.Flags().GetString("file")
			if err != nil {
				return err
			}

			var text string
			switch {
			case len(args) > 0:
				if path != "" {
					return errors.New("give either text arguments or --file, not both")
				}
				text = strings.Join(args, " ")
			case path != "":
				data, err := readInput(cmd, path)
				if err != nil {
					return err
				}
				text = string(data)
			default:
				data, err := readInput(cmd, "-")
				if err != nil {
					return err
				}
				text = string(data)
			}

			counts := engine.LetterStatistic(text)
			a.logger.Debug().Int("bytes", len(text)).Int("letters", len(counts)).Msg("counted letters")

			return a.render(cmd, output{
				Command: "letters",
				Input:   map[string]any{"length": len(text)},
				Result:  counts,
				Table:   engine.BuildLetterTable("Letter statistic", counts),
			})
		},
	}
	cmd.Flags().String("file", "", "Text file to analyze (- for stdin)")
	return cmd
}

// inputFormat resolves --input-format, falling back to the file extension.
func inputFormat(flag, path string) (string, error) {
	switch strings.ToLower(flag) {
	case "csv", "json":
		return strings.ToLower(flag), nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return "json", nil
		}
		return "csv", nil
	default:
		return "", errors.Errorf("unknown input format %q (use csv or json)", flag)
	}
}

// readInput reads path, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read stdin")
	}
	data, err := os.ReadFile(path)
	return data, errors.Wrapf(err, "failed to read %s", path)
}
