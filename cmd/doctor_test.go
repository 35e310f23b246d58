package cmd

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkByName(checks []DoctorCheck, name string) DoctorCheck {
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	return DoctorCheck{}
}

func TestDoctorCommand_Healthy(t *testing.T) {
	dataFile := setupCLI(t)
	seedTasks(t, dataFile, fixtureTasks()...)

	out, _, err := executeCommand(t, dataFile, "doctor", "--json")
	require.NoError(t, err)

	var report doctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Healthy)
	require.NotNil(t, report.File)
	assert.Equal(t, 3, report.File.TaskCount)
	assert.Equal(t, checkOK, checkByName(report.Checks, "Task file").Status)
	assert.Equal(t, checkWarn, checkByName(report.Checks, "Backups").Status)
	assert.Equal(t, checkOK, checkByName(report.Checks, "Format").Status)
}

func TestDoctorCommand_MissingFileWarns(t *testing.T) {
	dataFile := setupCLI(t)

	out, _, err := executeCommand(t, dataFile, "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "does not exist yet")
	assert.Contains(t, out, "Everything looks good")
}

func TestDoctorCommand_CorruptFileFails(t *testing.T) {
	dataFile := setupCLI(t)
	require.NoError(t, os.WriteFile(dataFile, []byte("{broken"), 0o644))

	out, _, err := executeCommand(t, dataFile, "doctor", "--json")
	require.Error(t, err)

	var report doctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Healthy)
	assert.Equal(t, checkFail, checkByName(report.Checks, "Task file").Status)

	_, _, err = executeCommand(t, dataFile, "doctor")
	assert.ErrorIs(t, err, errDoctorFailed)
}
