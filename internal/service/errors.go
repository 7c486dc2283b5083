package service

import "errors"

// Operation errors. Wrapped with the offending names at the point of
// detection; callers match with errors.Is.
var (
	ErrDuplicateStudent   = errors.New("student already exists")
	ErrStudentNotFound    = errors.New("student not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrInvalidGradeFormat = errors.New("invalid grade format")
	ErrGradeOutOfRange    = errors.New("grade must be between 0 and 100")
)
