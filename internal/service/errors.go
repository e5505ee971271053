package service

import "errors"

var (
	// ErrExamUnavailable means the backend returned no result object for the session.
	ErrExamUnavailable = errors.New("exam result not available")
	// ErrExamNotGenerated means the session exists but no exam was generated yet.
	ErrExamNotGenerated = errors.New("exam result is not available yet, generate the exam first")
)
