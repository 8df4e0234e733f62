package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/mini-datagrid/internal/query/operations/testutil"
)

// =============================================================================
// SUITE: EXPORT ENCODERS
// =============================================================================

// TestWriteCSV verifies that WriteCSV:
// - Writes column labels as the header row
// - Stringifies raw cell values, whole floats without a decimal point
// - Leaves cells of missing values empty
func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := testutil.ComplianceRows()[:3]

	err := WriteCSV(&buf, testutil.ComplianceColumns(), rows)
	assert.NilError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 4, len(lines))
	assert.Equal(t, "ID,Check,Vessel,Status,Owner,Hours,Notes", lines[0])
	assert.Equal(t, "chk-001,Hull Girder Strength,Aurora,Open,alice,12.5,", lines[1])
	assert.Equal(t, "chk-002,Fatigue Screening,Aurora,Closed,bob,8,revisit weld detail W4", lines[2])
}

// TestWriteJSONL verifies that WriteJSONL:
// - Emits one JSON object per row
// - Keeps fields in column order
// - Omits fields with no value instead of writing null
func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	rows := testutil.ComplianceRows()[:2]

	err := WriteJSONL(&buf, testutil.ComplianceColumns(), rows)
	assert.NilError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 2, len(lines))

	// chk-001 has no notes, so the notes field must be absent entirely
	assert.Equal(t,
		`{"id":"chk-001","name":"Hull Girder Strength","vessel":"Aurora","status":"Open","owner":"alice","hours":12.5}`,
		lines[0])
	assert.Assert(t, strings.Contains(lines[1], `"notes":"revisit weld detail W4"`))

	t.Run("lines decode independently", func(t *testing.T) {
		for _, line := range lines {
			var decoded map[string]interface{}
			assert.NilError(t, json.Unmarshal([]byte(line), &decoded))
		}
	})
}

// TestWriteFile verifies that WriteFile:
// - Produces the same bytes as the in-memory encoders
// - Leaves no temp file behind
// - Rejects unknown formats
func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	rows := testutil.ComplianceRows()

	path := filepath.Join(dir, "checks.csv")
	err := WriteFile(path, FormatCSV, testutil.ComplianceColumns(), rows)
	assert.NilError(t, err)

	written, err := os.ReadFile(path)
	assert.NilError(t, err)

	var expected bytes.Buffer
	assert.NilError(t, WriteCSV(&expected, testutil.ComplianceColumns(), rows))
	assert.DeepEqual(t, expected.Bytes(), written)

	_, err = os.Stat(path + ".tmp")
	assert.Assert(t, os.IsNotExist(err))

	t.Run("jsonl format", func(t *testing.T) {
		jsonlPath := filepath.Join(dir, "checks.jsonl")
		assert.NilError(t, WriteFile(jsonlPath, FormatJSONL, testutil.ComplianceColumns(), rows))

		data, err := os.ReadFile(jsonlPath)
		assert.NilError(t, err)
		assert.Equal(t, len(rows), strings.Count(string(data), "\n"))
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		err := WriteFile(filepath.Join(dir, "checks.xml"), Format("xml"), testutil.ComplianceColumns(), rows)
		assert.ErrorContains(t, err, "unknown export format")
	})
}

// TestExportEmptyRowSet verifies that both encoders handle zero rows:
// CSV keeps its header, JSONL writes nothing.
func TestExportEmptyRowSet(t *testing.T) {
	var csvBuf, jsonlBuf bytes.Buffer

	assert.NilError(t, WriteCSV(&csvBuf, testutil.ComplianceColumns(), nil))
	assert.Equal(t, "ID,Check,Vessel,Status,Owner,Hours,Notes\n", csvBuf.String())

	assert.NilError(t, WriteJSONL(&jsonlBuf, testutil.ComplianceColumns(), nil))
	assert.Equal(t, 0, jsonlBuf.Len())
}
