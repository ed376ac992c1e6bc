package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	var names []string
	for _, c := range NewRootCmd().Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"serve", "password", "calendar", "settings", "generate", "graph", "qr", "timer", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "index "), out)
}

func TestPassword(t *testing.T) {
	args := []string{"password", "--seed", "s3cret", "--site", "github.com", "--email", "me@example.com"}

	first, err := run(t, "", args...)
	require.NoError(t, err)
	second, err := run(t, "", args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, strings.TrimSpace(first), 17)

	other, err := run(t, "", append(args[:len(args):len(args)], "--algorithm", "sha512")...)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	_, err = run(t, "", "password", "--seed", "x", "--length", "4")
	assert.Error(t, err)

	_, err = run(t, "", "password", "--seed", "x", "--algorithm", "md5")
	assert.Error(t, err)
}

func TestPasswordPromptReadsSeedFromInput(t *testing.T) {
	flagged, err := run(t, "", "password", "--seed", "s3cret", "--site", "github.com")
	require.NoError(t, err)
	prompted, err := run(t, "s3cret\n", "password", "--prompt", "--site", "github.com")
	require.NoError(t, err)
	assert.Equal(t, flagged, prompted)
}

func TestPasswordListAlgorithms(t *testing.T) {
	out, err := run(t, "", "password", "--list-algorithms")
	require.NoError(t, err)
	assert.Contains(t, out, "blake3")
	assert.Contains(t, out, "crc64")
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	first, err := run(t, "", "generate", "string", "--seed", "42", "--length", "12")
	require.NoError(t, err)
	second, err := run(t, "", "generate", "string", "--seed", "42", "--length", "12")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var s string
	require.NoError(t, json.Unmarshal([]byte(first), &s))
	assert.Len(t, s, 12)
}

func TestGenerateKinds(t *testing.T) {
	tests := []struct {
		name string
		args []string
		dst  any
	}{
		{"permutation", []string{"permutation", "--size", "5"}, &[]int{}},
		{"array", []string{"array", "--rows", "2", "--cols", "3"}, &[][]int{}},
		{"graph", []string{"graph", "--type", "cyclic", "--format", "edgelist", "--nodes", "4"}, &[][3]int{}},
		{"tree", []string{"tree", "--nodes", "6"}, &[]int{}},
		{"binarytree", []string{"binarytree", "--height", "3"}, &[]*int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "", append([]string{"generate", "--seed", "7"}, tt.args...)...)
			require.NoError(t, err)
			require.NoError(t, json.Unmarshal([]byte(out), tt.dst))
		})
	}

	_, err := run(t, "", "generate", "graph", "--type", "tangled")
	assert.Error(t, err)
}

func TestGraphValidateFromStdin(t *testing.T) {
	out, err := run(t, "[[1,2],[2],[]]", "graph", "validate", "--type", "adjmap")
	require.NoError(t, err)

	var g struct {
		Nodes []map[string]any `json:"nodes"`
		Links []map[string]any `json:"links"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Links, 3)

	_, err = run(t, `{"a":1}`, "graph", "validate", "--type", "adjmap")
	assert.EqualError(t, err, "Input must be an array")
}

func TestQRRoundTrip(t *testing.T) {
	png := filepath.Join(t.TempDir(), "code.png")
	_, err := run(t, "", "qr", "encode", "https://example.com/start", "-o", png)
	require.NoError(t, err)

	out, err := run(t, "", "qr", "decode", png)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/start\n", out)
}

func TestSettingsExportImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.db")
	dst := filepath.Join(dir, "dst.db")
	export := filepath.Join(dir, "export.json")

	_, err := run(t, "", "settings", "set", "theme", `"dark"`, "--db", src)
	require.NoError(t, err)
	_, err = run(t, "", "settings", "set", "theme", `"neon"`, "--db", src)
	assert.Error(t, err)

	_, err = run(t, "", "settings", "export", "--db", src, "-o", export)
	require.NoError(t, err)
	data, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"dark"}`, string(data))

	out, err := run(t, "", "settings", "import", export, "--db", dst)
	require.NoError(t, err)
	assert.Equal(t, "imported 1 keys: theme\n", out)

	out, err = run(t, "", "settings", "get", "theme", "--db", dst)
	require.NoError(t, err)
	assert.Equal(t, "\"dark\"\n", out)

	_, err = run(t, "", "settings", "get", "nope", "--db", dst)
	assert.Error(t, err)
}

func writeSchedule(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "B4", "CS 101 - Intro to Programming"))
	require.NoError(t, f.SetCellValue(sheet, "E4", "3"))
	require.NoError(t, f.SetCellValue(sheet, "K4", "Tue/Thu | 10:00 AM - 11:15 AM | Hall A 101"))
	require.NoError(t, f.SetCellValue(sheet, "L4", "Ada Lovelace"))

	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestCalendar(t *testing.T) {
	path := writeSchedule(t)

	out, err := run(t, "", "calendar", path, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"code": "CS 101"`)

	out, err = run(t, "", "calendar", path, "--first", "2025-01-13", "--last", "2025-05-02")
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=TU,TH;UNTIL=20250502T235959\r\n")

	_, err = run(t, "", "calendar", path, "--first", "2025-05-02", "--last", "2025-01-13")
	assert.Error(t, err)
}

func TestTimer(t *testing.T) {
	out, err := run(t, "", "timer", "30ms", "--tick", "5ms")
	require.NoError(t, err)
	assert.Contains(t, out, "time's up")

	_, err = run(t, "", "timer", "soon")
	assert.Error(t, err)
	_, err = run(t, "", "timer", "-1s")
	assert.Error(t, err)
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{-time.Second, "00:00:00"},
		{1500 * time.Millisecond, "00:00:02"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRemaining(tt.in), tt.in.String())
	}
}
