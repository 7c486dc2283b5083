package handler_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gradebook/internal/handler"
	"gradebook/internal/model"
	"gradebook/internal/service"
	"gradebook/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runSession drives the menu with scripted input and returns its
// output plus the store the session saved into.
func runSession(t *testing.T, gradebook *service.GradebookService, input string) (string, *storage.FileStore) {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "grades.json"))
	csvService := service.NewCSVService(gradebook)
	var out bytes.Buffer
	menu := handler.NewMenuHandler(gradebook, csvService, store, strings.NewReader(input), &out)
	require.NoError(t, menu.Run())
	return out.String(), store
}

func TestMenuAddStudentAndGrade(t *testing.T) {
	gradebook := service.NewGradebookService()
	out, _ := runSession(t, gradebook,
		"1\nAlice\n"+
			"2\nAlice\nMath\n90\n"+
			"9\n")

	assert.Contains(t, out, "Added new student: Alice")
	assert.Contains(t, out, "Added grade for Alice in Math: 90")
	assert.Contains(t, out, "Exiting application. Goodbye!")

	score, ok := gradebook.Grade("Alice", "Math")
	assert.True(t, ok)
	assert.Equal(t, 90.0, score)
}

func TestMenuStudentReport(t *testing.T) {
	gradebook := service.NewGradebookService()
	require.NoError(t, gradebook.AddStudent("Alice"))
	_, err := gradebook.AddGrade("Alice", "Math", "80")
	require.NoError(t, err)
	_, err = gradebook.AddGrade("Alice", "Science", "90")
	require.NoError(t, err)

	out, _ := runSession(t, gradebook, "3\nAlice\n9\n")

	assert.Contains(t, out, "--- Report for Alice ---")
	assert.Contains(t, out, "Math: 80")
	assert.Contains(t, out, "Science: 90")
	assert.Contains(t, out, "Overall Average: 85.00")
}

func TestMenuReportWithoutGrades(t *testing.T) {
	gradebook := service.NewGradebookService()
	require.NoError(t, gradebook.AddStudent("Alice"))

	out, _ := runSession(t, gradebook, "3\nAlice\n9\n")
	assert.Contains(t, out, "No grades recorded yet.")
}

func TestMenuClassAverage(t *testing.T) {
	gradebook := service.NewGradebookService()
	for _, name := range []string{"A", "B"} {
		require.NoError(t, gradebook.AddStudent(name))
	}
	_, err := gradebook.AddGrade("A", "Math", "100")
	require.NoError(t, err)
	_, err = gradebook.AddGrade("B", "Math", "50")
	require.NoError(t, err)

	out, _ := runSession(t, gradebook, "4\nMath\n4\nFrench\n9\n")
	assert.Contains(t, out, "Class average for Math: 75.00")
	assert.Contains(t, out, "No grades found for subject: French")
}

func TestMenuDeleteSubmenu(t *testing.T) {
	gradebook := service.NewGradebookService()
	require.NoError(t, gradebook.AddStudent("Alice"))
	require.NoError(t, gradebook.AddStudent("Bob"))
	_, err := gradebook.AddGrade("Alice", "Math", "90")
	require.NoError(t, err)
	_, err = gradebook.AddGrade("Alice", "Science", "80")
	require.NoError(t, err)

	out, _ := runSession(t, gradebook,
		"6\n"+
			"2\nAlice\nMath\n"+ // delete one grade
			"1\nBob\n"+ // delete a student
			"3\n"+ // back to main menu
			"9\n")

	assert.Contains(t, out, "Successfully deleted grade for Alice in Math.")
	assert.Contains(t, out, "Successfully deleted student: Bob.")

	_, ok := gradebook.Grade("Alice", "Math")
	assert.False(t, ok)
	_, ok = gradebook.Grade("Alice", "Science")
	assert.True(t, ok)
	assert.Equal(t, []string{"Alice"}, gradebook.ListStudents())
}

func TestMenuInvalidChoicesReprompt(t *testing.T) {
	gradebook := service.NewGradebookService()
	out, _ := runSession(t, gradebook, "banana\n6\n7\n3\n9\n")

	assert.Contains(t, out, "Invalid choice. Please enter a number between 1 and 9.")
	assert.Contains(t, out, "Invalid choice. Please enter a number between 1 and 3.")
	assert.Contains(t, out, "Exiting application. Goodbye!")
}

func TestMenuOperationErrorsKeepLooping(t *testing.T) {
	gradebook := service.NewGradebookService()
	require.NoError(t, gradebook.AddStudent("Alice"))

	out, _ := runSession(t, gradebook,
		"1\nAlice\n"+ // duplicate
			"2\nBob\nMath\n90\n"+ // unknown student
			"2\nAlice\nMath\n120\n"+ // out of range
			"9\n")

	assert.Contains(t, out, service.ErrDuplicateStudent.Error())
	assert.Contains(t, out, service.ErrStudentNotFound.Error())
	assert.Contains(t, out, service.ErrGradeOutOfRange.Error())

	// Failed operations leave the book untouched
	assert.Equal(t, []string{"Alice"}, gradebook.ListStudents())
	_, ok := gradebook.Grade("Alice", "Math")
	assert.False(t, ok)
}

func TestMenuExitSaves(t *testing.T) {
	gradebook := service.NewGradebookService()
	out, store := runSession(t, gradebook, "1\nAlice\n2\nAlice\nMath\n90\n9\n")
	assert.Contains(t, out, "Data saved successfully.")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Snapshot{"Alice": {"Math": 90}}, loaded)
}

func TestMenuEOFSaves(t *testing.T) {
	gradebook := service.NewGradebookService()
	_, store := runSession(t, gradebook, "1\nAlice\n")

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, model.Snapshot{"Alice": {}}, loaded)
}

func TestMenuImportExportCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "in.csv")
	exportPath := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("student,subject,grade\nAlice,Math,95\nBob,Math,85\n"), 0644))

	gradebook := service.NewGradebookService()
	out, _ := runSession(t, gradebook, "7\n"+csvPath+"\n8\n"+exportPath+"\n9\n")

	assert.Contains(t, out, "Imported 2 of 2 rows")
	assert.Contains(t, out, "Exported 2 grades to "+exportPath)

	score, ok := gradebook.Grade("Alice", "Math")
	assert.True(t, ok)
	assert.Equal(t, 95.0, score)
}
