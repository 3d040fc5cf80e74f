package service

import (
	"strings"

	"github.com/codeclimb/unirank/api/internal/model"
)

// verifyFunc checks one source's certificate evidence
type verifyFunc func(certificate map[string]string) bool

// CourseVerifier validates certificate evidence per course source. Academic
// sources require a certificate id, MOOC marketplaces require a shareable
// https certificate URL, and unknown sources pass with any evidence at all.
type CourseVerifier struct {
	strategies map[string]verifyFunc
}

// NewCourseVerifier creates a verifier with the built-in source strategies
func NewCourseVerifier() *CourseVerifier {
	return &CourseVerifier{
		strategies: map[string]verifyFunc{
			"IIT":      verifyCertificateID,
			"NPTEL":    verifyCertificateID,
			"Coursera": verifyCertificateURL,
			"Udemy":    verifyCertificateURL,
		},
	}
}

// Verify reports whether the certificate evidence satisfies the course
// source's verification strategy
func (v *CourseVerifier) Verify(course *model.Course, certificate map[string]string) bool {
	if strategy, ok := v.strategies[course.Source]; ok {
		return strategy(certificate)
	}
	return len(certificate) > 0
}

func verifyCertificateID(certificate map[string]string) bool {
	return strings.TrimSpace(certificate["certificate_id"]) != ""
}

func verifyCertificateURL(certificate map[string]string) bool {
	return strings.HasPrefix(certificate["certificate_url"], "https://")
}
