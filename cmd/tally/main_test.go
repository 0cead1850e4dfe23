package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spektr-org/tally/engine"
)

// run executes the root command with args and returns what it wrote to stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ============================================================================
// EVENS & SQUARES
// ============================================================================

func TestEvensCSV(t *testing.T) {
	out, err := run(t, "", "evens", "7", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Value\n2\n4\n6\n", out)
}

func TestEvensJSON(t *testing.T) {
	out, err := run(t, "", "evens", "10")
	require.NoError(t, err)

	var got struct {
		Command string         `json:"command"`
		Input   map[string]int `json:"input"`
		Result  []int          `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, "evens", got.Command)
	require.Equal(t, 10, got.Input["exclusiveUpperBound"])
	require.Equal(t, []int{2, 4, 6, 8}, got.Result)
}

func TestEvensOutOfRange(t *testing.T) {
	_, err := run(t, "", "evens", "0")
	require.ErrorIs(t, err, engine.ErrOutOfRange)
}

func TestEvensInvalidArgument(t *testing.T) {
	_, err := run(t, "", "evens", "ten")
	require.Error(t, err)

	_, err = run(t, "", "evens")
	require.Error(t, err)
}

func TestSquaresCSV(t *testing.T) {
	out, err := run(t, "", "squares", "50", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Value\n2401\n1764\n1225\n784\n441\n196\n49\n", out)
}

func TestSquaresDivisor(t *testing.T) {
	out, err := run(t, "", "squares", "10", "--divisor", "3", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Value\n81\n36\n9\n", out)
}

func TestSquaresOverflow(t *testing.T) {
	out, err := run(t, "", "squares", "40000")
	require.ErrorIs(t, err, engine.ErrOverflow)
	require.Empty(t, out)
}

// ============================================================================
// FAMILIES
// ============================================================================

func TestFamiliesCSV(t *testing.T) {
	path := writeFile(t, "people.csv", "family,age\n2,40\n1,10\n2,\n1,20\n3,\n1,30\n")

	out, err := run(t, "", "families", "--file", path, "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Family,Members,Average Age\n2,1,40.00\n1,3,20.00\n3,0,0.00\n", out)
}

func TestFamiliesJSONFromStdin(t *testing.T) {
	out, err := run(t, "household,years\n5,1\n5,2\n", "families", "--file", "-",
		"--family-column", "household", "--age-column", "years")
	require.NoError(t, err)
	require.JSONEq(t, `{
		"command": "families",
		"input": {"file": "-"},
		"result": [{"familyId": 5, "numberOfFamilyMembers": 2, "averageAge": "1.5"}]
	}`, out)
}

func TestFamiliesJSONFile(t *testing.T) {
	path := writeFile(t, "people.json", `[{"family": 1, "age": 1}, {"family": 1, "age": 2}, {"family": 2}]`)

	out, err := run(t, "", "families", "--file", path, "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Family,Members,Average Age\n1,2,1.50\n2,0,0.00\n", out)
}

func TestFamiliesInputFormatFlag(t *testing.T) {
	out, err := run(t, `[{"family": 4, "age": 8}]`, "families", "--file", "-", "--input-format", "json", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Family,Members,Average Age\n4,1,8.00\n", out)

	_, err = run(t, "", "families", "--file", "-", "--input-format", "xml")
	require.ErrorContains(t, err, "unknown input format")
}

func TestFamiliesRejectsUnrepresentableAge(t *testing.T) {
	path := writeFile(t, "people.csv", "family,age\n1,inf\n")
	_, err := run(t, "", "families", "--file", path)
	require.ErrorIs(t, err, engine.ErrInvalidRecord)
}

func TestFamiliesRequiresFile(t *testing.T) {
	_, err := run(t, "", "families")
	require.Error(t, err)
}

func TestFamiliesInvalidRecord(t *testing.T) {
	path := writeFile(t, "people.csv", "family,age\nsmith,40\n")
	_, err := run(t, "", "families", "--file", path)
	require.ErrorIs(t, err, engine.ErrInvalidRecord)
}

// ============================================================================
// LETTERS
// ============================================================================

func TestLettersFromArgs(t *testing.T) {
	out, err := run(t, "", "letters", "Hello,", "World!", "123", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Letter,Count\nD,1\nE,1\nH,1\nL,3\nO,2\nR,1\nW,1\n", out)
}

func TestLettersFromStdin(t *testing.T) {
	out, err := run(t, "abba", "letters")
	require.NoError(t, err)

	var got struct {
		Result []struct {
			Letter string `json:"letter"`
			Count  int    `json:"count"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Result, 2)
	require.Equal(t, "A", got.Result[0].Letter)
	require.Equal(t, 2, got.Result[0].Count)
	require.Equal(t, "B", got.Result[1].Letter)
}

func TestLettersFromFileText(t *testing.T) {
	path := writeFile(t, "input.txt", "zz 9")
	out, err := run(t, "", "letters", "--file", path, "--format", "text")
	require.NoError(t, err)
	require.Contains(t, out, "Letter statistic")
	require.Regexp(t, `(?m)^Z +2$`, out)
	require.Contains(t, out, "Total (1 distinct letters)")
}

func TestLettersIgnoresFamiliesFileSetting(t *testing.T) {
	t.Setenv("TALLY_FILE", writeFile(t, "people.csv", "family,age\n1,40\n"))

	out, err := run(t, "", "letters", "abc", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Letter,Count\nA,1\nB,1\nC,1\n", out)

	out, err = run(t, "zz", "letters", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Letter,Count\nZ,2\n", out)
}

func TestLettersArgsAndFile(t *testing.T) {
	path := writeFile(t, "input.txt", "abc")
	_, err := run(t, "", "letters", "--file", path, "xyz")
	require.Error(t, err)
}

func TestLettersEmptyText(t *testing.T) {
	out, err := run(t, "", "letters", "--format", "text", "1234")
	require.NoError(t, err)
	require.Equal(t, "Letter statistic\nNo result.\n", out)
}

// ============================================================================
// OUTPUT & CONFIG
// ============================================================================

func TestOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evens.csv")
	out, err := run(t, "", "evens", "5", "--format", "csv", "--out", path)
	require.NoError(t, err)
	require.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "Value\n2\n4\n", string(data))
}

func TestUnknownFormat(t *testing.T) {
	_, err := run(t, "", "evens", "5", "--format", "xml")
	require.ErrorContains(t, err, "unknown format")
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "tally.yaml", "format: csv\n")
	out, err := run(t, "", "evens", "5", "--config", path)
	require.NoError(t, err)
	require.Equal(t, "Value\n2\n4\n", out)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "", "evens", "5", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestEnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("TALLY_FORMAT", "csv")
	out, err := run(t, "", "evens", "5")
	require.NoError(t, err)
	require.Equal(t, "Value\n2\n4\n", out)
}

func TestFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("TALLY_FORMAT", "xml")
	out, err := run(t, "", "evens", "3", "--format", "csv")
	require.NoError(t, err)
	require.Equal(t, "Value\n2\n", out)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "evens", "3", "--log-level", "loud")
	require.Error(t, err)
}
