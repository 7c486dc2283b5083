package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"student", "subject", "grade"}

// ImportSummary describes the outcome of one CSV import.
type ImportSummary struct {
	FileName  string
	TotalRows int
	Imported  int
	Skipped   int
	Errors    []string
	StartTime time.Time
	EndTime   time.Time
}

// CSVService imports grades from and exports grades to local CSV
// files. Rows are student,subject,grade; every imported grade goes
// through the gradebook's own validation.
type CSVService struct {
	gradebook *GradebookService
}

func NewCSVService(gradebook *GradebookService) *CSVService {
	return &CSVService{gradebook: gradebook}
}

// Import reads path row by row. Missing students are created, bad rows
// are skipped and reported in the summary, never fatal. A leading
// header row is ignored.
func (s *CSVService) Import(path string) (*ImportSummary, error) {
	summary := &ImportSummary{
		FileName:  filepath.Base(path),
		StartTime: time.Now(),
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.TotalRows++
			summary.skip(line, err.Error())
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		summary.TotalRows++
		if len(record) != 3 {
			summary.skip(line, fmt.Sprintf("expected 3 fields, got %d", len(record)))
			continue
		}
		name, subject, raw := record[0], record[1], record[2]
		if name == "" || subject == "" {
			summary.skip(line, "empty student or subject name")
			continue
		}
		created := false
		if err := s.gradebook.AddStudent(name); err == nil {
			created = true
		} else if !errors.Is(err, ErrDuplicateStudent) {
			summary.skip(line, err.Error())
			continue
		}
		if _, err := s.gradebook.AddGrade(name, subject, raw); err != nil {
			// Don't leave a zero-grade student behind for a rejected row
			if created {
				_ = s.gradebook.DeleteStudent(name)
			}
			summary.skip(line, err.Error())
			continue
		}
		summary.Imported++
	}

	summary.EndTime = time.Now()
	log.Printf("Imported %d of %d rows from %s in %v\n",
		summary.Imported, summary.TotalRows, summary.FileName, summary.EndTime.Sub(summary.StartTime))
	return summary, nil
}

// Export writes the whole gradebook to path in insertion order, with a
// header row. Returns the number of grade rows written.
func (s *CSVService) Export(path string) (int, error) {
	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return 0, err
	}
	rows := 0
	for _, name := range s.gradebook.ListStudents() {
		report, err := s.gradebook.StudentReport(name)
		if err != nil {
			return rows, err
		}
		for _, grade := range report.Grades {
			record := []string{name, grade.Subject, strconv.FormatFloat(grade.Score, 'f', -1, 64)}
			if err := writer.Write(record); err != nil {
				return rows, err
			}
			rows++
		}
	}
	writer.Flush()
	return rows, writer.Error()
}

func (s *ImportSummary) skip(line int, reason string) {
	s.Skipped++
	msg := fmt.Sprintf("line %d: %s", line, reason)
	s.Errors = append(s.Errors, msg)
	log.Println("Skipping CSV row:", msg)
}

// isHeader matches the literal header row, case-insensitively, so a
// malformed first data row is reported as a skip instead of silently
// dropped.
func isHeader(record []string) bool {
	if len(record) != len(csvHeader) {
		return false
	}
	for i, field := range record {
		if !strings.EqualFold(strings.TrimSpace(field), csvHeader[i]) {
			return false
		}
	}
	return true
}
