package enums

import "strings"

type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusPublished CourseStatus = "PUBLISHED"
	CourseStatusArchived  CourseStatus = "ARCHIVED"
)

func ParseCourseStatus(value string) (CourseStatus, bool) {
	switch CourseStatus(strings.ToUpper(strings.TrimSpace(value))) {
	case CourseStatusDraft:
		return CourseStatusDraft, true
	case CourseStatusPublished:
		return CourseStatusPublished, true
	case CourseStatusArchived:
		return CourseStatusArchived, true
	default:
		return "", false
	}
}
