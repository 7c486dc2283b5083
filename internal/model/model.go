package model

// Snapshot is the serialization shape of the whole gradebook:
// student name -> subject -> score. All persistence backends load and
// save this shape.
type Snapshot map[string]map[string]float64

// GradeRecord is one persisted grade row for the database backend.
type GradeRecord struct {
	StudentName string `gorm:"primaryKey"`
	Subject     string `gorm:"primaryKey"`
	Score       float64
}

// SubjectGrade is a single (subject, score) pair in a report.
type SubjectGrade struct {
	Subject string
	Score   float64
}

// Report is the full view of one student: grades in insertion order
// plus the overall average. HasAverage is false when the student has
// no grades yet.
type Report struct {
	Name       string
	Grades     []SubjectGrade
	Average    float64
	HasAverage bool
}
