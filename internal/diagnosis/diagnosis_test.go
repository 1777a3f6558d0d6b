package diagnosis

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	set := Collect("Fever", "Cough")

	require.Len(t, set, 2)
	assert.Equal(t, "Fever", set[0].Diagnosis)
	assert.Equal(t, "Cough", set[1].Diagnosis)
}

func TestCollect_Single(t *testing.T) {
	set := Collect("Fever and chills, persistent cough")

	require.Len(t, set, 1)
	assert.Equal(t, "Fever and chills, persistent cough", set[0].Diagnosis)
}

func TestCollect_None(t *testing.T) {
	set := Collect()

	assert.Empty(t, set)
	assert.NotNil(t, set)
}

func TestHeaderAndRow(t *testing.T) {
	assert.Equal(t, []string{"Diagnoses"}, Header())
	assert.Equal(t, []string{"Fever"}, Row(Record{Diagnosis: "Fever"}))
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, Collect("Fever")))

	assert.Equal(t, "Diagnoses\nFever\n", buf.String())
}

func TestSave(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), FileName)

	written, err := Save(outputPath, Collect("Fever"))
	require.NoError(t, err)
	assert.Equal(t, outputPath, written)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "Diagnoses\nFever\n", string(data))
}

func TestSave_EmptyText(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), FileName)

	_, err := Save(outputPath, Collect(""))
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "Diagnoses\n\"\"\n", string(data))
}

func TestSave_TwoLines(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), FileName)

	_, err := Save(outputPath, Collect(`Fever, "high" grade`))
	require.NoError(t, err)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Diagnoses", lines[0])
	assert.Equal(t, `"Fever, ""high"" grade"`, lines[1])
}

func TestSave_Idempotent(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), FileName)

	_, err := Save(outputPath, Collect("Fever"))
	require.NoError(t, err)
	first, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	_, err = Save(outputPath, Collect("Fever"))
	require.NoError(t, err)
	second, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
