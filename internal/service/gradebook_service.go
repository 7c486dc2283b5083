package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gradebook/internal/model"
)

const (
	minScore = 0
	maxScore = 100
)

// studentGrades keeps a student's scores plus the order subjects were
// first added in, so reports and exports list them deterministically.
type studentGrades struct {
	subjects []string
	scores   map[string]float64
}

// GradebookService owns the in-memory gradebook and implements every
// operation on it. A failed operation never modifies the book.
type GradebookService struct {
	order    []string
	students map[string]*studentGrades
}

func NewGradebookService() *GradebookService {
	return &GradebookService{
		students: make(map[string]*studentGrades),
	}
}

func (s *GradebookService) AddStudent(name string) error {
	if _, exists := s.students[name]; exists {
		return fmt.Errorf("%q: %w", name, ErrDuplicateStudent)
	}
	s.students[name] = &studentGrades{scores: make(map[string]float64)}
	s.order = append(s.order, name)
	return nil
}

// AddGrade parses raw as a real number and sets or overwrites the
// grade for (name, subject). Overwriting does not change the
// student's subject count.
func (s *GradebookService) AddGrade(name, subject, raw string) (float64, error) {
	student, exists := s.students[name]
	if !exists {
		return 0, fmt.Errorf("%q: %w", name, ErrStudentNotFound)
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrInvalidGradeFormat)
	}
	// NaN fails both range comparisons, so check it explicitly.
	if math.IsNaN(score) || score < minScore || score > maxScore {
		return 0, fmt.Errorf("%v: %w", score, ErrGradeOutOfRange)
	}
	if _, seen := student.scores[subject]; !seen {
		student.subjects = append(student.subjects, subject)
	}
	student.scores[subject] = score
	return score, nil
}

func (s *GradebookService) DeleteStudent(name string) error {
	if _, exists := s.students[name]; !exists {
		return fmt.Errorf("%q: %w", name, ErrStudentNotFound)
	}
	delete(s.students, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *GradebookService) DeleteGrade(name, subject string) error {
	student, exists := s.students[name]
	if !exists {
		return fmt.Errorf("%q: %w", name, ErrStudentNotFound)
	}
	if _, seen := student.scores[subject]; !seen {
		return fmt.Errorf("%q: %w", subject, ErrSubjectNotFound)
	}
	delete(student.scores, subject)
	for i, sub := range student.subjects {
		if sub == subject {
			student.subjects = append(student.subjects[:i], student.subjects[i+1:]...)
			break
		}
	}
	return nil
}

// StudentAverage returns the mean of the student's scores rounded to
// two decimals. ok is false when the student is absent or has no
// grades; an absent student is treated the same as one with no grades.
func (s *GradebookService) StudentAverage(name string) (avg float64, ok bool) {
	student, exists := s.students[name]
	if !exists || len(student.scores) == 0 {
		return 0, false
	}
	var total float64
	for _, score := range student.scores {
		total += score
	}
	return round2(total / float64(len(student.scores))), true
}

// SubjectClassAverage returns the mean score for subject across every
// student that has a grade in it. ok is false when no student does.
func (s *GradebookService) SubjectClassAverage(subject string) (avg float64, ok bool) {
	var total float64
	count := 0
	for _, name := range s.order {
		if score, seen := s.students[name].scores[subject]; seen {
			total += score
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return round2(total / float64(count)), true
}

// ListStudents returns student names in insertion order.
func (s *GradebookService) ListStudents() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

func (s *GradebookService) StudentReport(name string) (*model.Report, error) {
	student, exists := s.students[name]
	if !exists {
		return nil, fmt.Errorf("%q: %w", name, ErrStudentNotFound)
	}
	report := &model.Report{Name: name}
	for _, subject := range student.subjects {
		report.Grades = append(report.Grades, model.SubjectGrade{
			Subject: subject,
			Score:   student.scores[subject],
		})
	}
	report.Average, report.HasAverage = s.StudentAverage(name)
	return report, nil
}

// Grade looks up a single score.
func (s *GradebookService) Grade(name, subject string) (float64, bool) {
	student, exists := s.students[name]
	if !exists {
		return 0, false
	}
	score, seen := student.scores[subject]
	return score, seen
}

// Snapshot copies the whole book into its serialization shape.
func (s *GradebookService) Snapshot() model.Snapshot {
	snap := make(model.Snapshot, len(s.students))
	for name, student := range s.students {
		grades := make(map[string]float64, len(student.scores))
		for subject, score := range student.scores {
			grades[subject] = score
		}
		snap[name] = grades
	}
	return snap
}

// Restore replaces the book's contents with snap. Students and
// subjects are loaded in sorted-key order so a fresh run iterates
// deterministically.
func (s *GradebookService) Restore(snap model.Snapshot) {
	s.order = nil
	s.students = make(map[string]*studentGrades, len(snap))
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		student := &studentGrades{scores: make(map[string]float64, len(snap[name]))}
		subjects := make([]string, 0, len(snap[name]))
		for subject := range snap[name] {
			subjects = append(subjects, subject)
		}
		sort.Strings(subjects)
		for _, subject := range subjects {
			student.subjects = append(student.subjects, subject)
			student.scores[subject] = snap[name][subject]
		}
		s.students[name] = student
		s.order = append(s.order, name)
	}
}

// round2 rounds to two decimals, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
