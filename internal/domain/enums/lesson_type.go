package enums

import "strings"

type LessonType string

const (
	LessonTypeVideo LessonType = "VIDEO"
	LessonTypeText  LessonType = "TEXT"
	LessonTypeQuiz  LessonType = "QUIZ"
)

func ParseLessonType(value string) (LessonType, bool) {
	switch LessonType(strings.ToUpper(strings.TrimSpace(value))) {
	case LessonTypeVideo:
		return LessonTypeVideo, true
	case LessonTypeText:
		return LessonTypeText, true
	case LessonTypeQuiz:
		return LessonTypeQuiz, true
	default:
		return "", false
	}
}
