package handler

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gradebook/internal/service"
	"gradebook/internal/storage"
)

// MenuHandler runs the interactive menu. It reads choices and
// parameters from in, writes everything user-facing to out, and is the
// only place that triggers a save (on exit, or on end of input).
type MenuHandler struct {
	gradebook *service.GradebookService
	csv       *service.CSVService
	store     storage.SnapshotStore
	in        *bufio.Scanner
	out       io.Writer
}

func NewMenuHandler(gradebook *service.GradebookService, csv *service.CSVService, store storage.SnapshotStore, in io.Reader, out io.Writer) *MenuHandler {
	return &MenuHandler{
		gradebook: gradebook,
		csv:       csv,
		store:     store,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run loops until the user picks exit or input ends. Both paths save.
func (h *MenuHandler) Run() error {
	for {
		fmt.Fprintln(h.out)
		fmt.Fprintln(h.out, "*** Students Grading App Menu ***")
		fmt.Fprintln(h.out, "1. Add a new student")
		fmt.Fprintln(h.out, "2. Add a grade for a student")
		fmt.Fprintln(h.out, "3. View a student report")
		fmt.Fprintln(h.out, "4. Calculate class average for a subject")
		fmt.Fprintln(h.out, "5. View all students")
		fmt.Fprintln(h.out, "6. Delete data (student or grade)")
		fmt.Fprintln(h.out, "7. Import grades from CSV")
		fmt.Fprintln(h.out, "8. Export grades to CSV")
		fmt.Fprintln(h.out, "9. Exit (save data)")

		choice, ok := h.prompt("Enter your choice (1-9): ")
		if !ok {
			return h.save()
		}
		switch choice {
		case "1":
			h.addStudent()
		case "2":
			h.addGrade()
		case "3":
			h.viewReport()
		case "4":
			h.classAverage()
		case "5":
			h.listStudents()
		case "6":
			if done := h.deleteMenu(); done {
				return h.save()
			}
		case "7":
			h.importCSV()
		case "8":
			h.exportCSV()
		case "9":
			if err := h.save(); err != nil {
				return err
			}
			fmt.Fprintln(h.out, "Exiting application. Goodbye!")
			return nil
		default:
			fmt.Fprintln(h.out, "Invalid choice. Please enter a number between 1 and 9.")
		}
	}
}

func (h *MenuHandler) addStudent() {
	name, ok := h.prompt("Enter student name: ")
	if !ok {
		return
	}
	if err := h.gradebook.AddStudent(name); err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "Added new student: %s\n", name)
}

func (h *MenuHandler) addGrade() {
	name, ok := h.prompt("Enter student name: ")
	if !ok {
		return
	}
	subject, ok := h.prompt("Enter subject name: ")
	if !ok {
		return
	}
	raw, ok := h.prompt("Enter grade: ")
	if !ok {
		return
	}
	score, err := h.gradebook.AddGrade(name, subject, raw)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "Added grade for %s in %s: %v\n", name, subject, score)
}

func (h *MenuHandler) viewReport() {
	name, ok := h.prompt("Enter student name to view report: ")
	if !ok {
		return
	}
	report, err := h.gradebook.StudentReport(name)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "\n--- Report for %s ---\n", report.Name)
	if len(report.Grades) == 0 {
		fmt.Fprintln(h.out, "No grades recorded yet.")
		return
	}
	for _, grade := range report.Grades {
		fmt.Fprintf(h.out, "  %s: %v\n", grade.Subject, grade.Score)
	}
	if report.HasAverage {
		fmt.Fprintf(h.out, "  Overall Average: %.2f\n", report.Average)
	} else {
		fmt.Fprintln(h.out, "  Overall Average: N/A")
	}
}

func (h *MenuHandler) classAverage() {
	subject, ok := h.prompt("Enter subject name to calculate class average: ")
	if !ok {
		return
	}
	avg, found := h.gradebook.SubjectClassAverage(subject)
	if !found {
		fmt.Fprintf(h.out, "No grades found for subject: %s\n", subject)
		return
	}
	fmt.Fprintf(h.out, "Class average for %s: %.2f\n", subject, avg)
}

func (h *MenuHandler) listStudents() {
	fmt.Fprintln(h.out, "\nCurrent Students:")
	names := h.gradebook.ListStudents()
	if len(names) == 0 {
		fmt.Fprintln(h.out, "(No students recorded)")
		return
	}
	for _, name := range names {
		fmt.Fprintf(h.out, "- %s\n", name)
	}
}

// deleteMenu loops until the user picks back. It reports true when
// input ended so the caller can shut down cleanly.
func (h *MenuHandler) deleteMenu() (eof bool) {
	for {
		fmt.Fprintln(h.out)
		fmt.Fprintln(h.out, "*** Delete Menu ***")
		fmt.Fprintln(h.out, "1. Delete a student (and all their grades)")
		fmt.Fprintln(h.out, "2. Delete a single grade (for a student/subject)")
		fmt.Fprintln(h.out, "3. Back to main menu")

		choice, ok := h.prompt("Enter your choice (1-3): ")
		if !ok {
			return true
		}
		switch choice {
		case "1":
			name, ok := h.prompt("Enter student name to delete: ")
			if !ok {
				return true
			}
			if err := h.gradebook.DeleteStudent(name); err != nil {
				fmt.Fprintln(h.out, "Error:", err)
				continue
			}
			fmt.Fprintf(h.out, "Successfully deleted student: %s.\n", name)
		case "2":
			name, ok := h.prompt("Enter student name: ")
			if !ok {
				return true
			}
			subject, ok := h.prompt("Enter subject name to delete grade for: ")
			if !ok {
				return true
			}
			if err := h.gradebook.DeleteGrade(name, subject); err != nil {
				fmt.Fprintln(h.out, "Error:", err)
				continue
			}
			fmt.Fprintf(h.out, "Successfully deleted grade for %s in %s.\n", name, subject)
		case "3":
			return false
		default:
			fmt.Fprintln(h.out, "Invalid choice. Please enter a number between 1 and 3.")
		}
	}
}

func (h *MenuHandler) importCSV() {
	path, ok := h.prompt("Enter CSV file to import: ")
	if !ok {
		return
	}
	summary, err := h.csv.Import(path)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "Imported %d of %d rows from %s.\n", summary.Imported, summary.TotalRows, summary.FileName)
	for _, msg := range summary.Errors {
		fmt.Fprintf(h.out, "  skipped %s\n", msg)
	}
}

func (h *MenuHandler) exportCSV() {
	path, ok := h.prompt("Enter CSV file to export to: ")
	if !ok {
		return
	}
	rows, err := h.csv.Export(path)
	if err != nil {
		fmt.Fprintln(h.out, "Error:", err)
		return
	}
	fmt.Fprintf(h.out, "Exported %d grades to %s.\n", rows, path)
}

func (h *MenuHandler) save() error {
	if err := h.store.Save(h.gradebook.Snapshot()); err != nil {
		return fmt.Errorf("save records: %w", err)
	}
	fmt.Fprintln(h.out, "Data saved successfully.")
	return nil
}

// prompt prints label and reads one trimmed line. ok is false once
// input is exhausted.
func (h *MenuHandler) prompt(label string) (line string, ok bool) {
	fmt.Fprint(h.out, label)
	if !h.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(h.in.Text()), true
}
