package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	// validation
	ErrUnknownMood       = errors.New("mood is not one of the course mood labels")
	ErrAnswersRequired   = errors.New("survey answers are required for this session")
	ErrEmptyMoodLabels   = errors.New("course must define at least one mood label")
	ErrDuplicateMoods    = errors.New("course mood labels must be unique")
	ErrDuplicateTitle    = errors.New("course title already used by this teacher")
	ErrGuestNameRequired = errors.New("guest name is required")

	// conflict
	ErrSessionClosed = errors.New("session is closed")

	// not found
	ErrCourseNotFound     = errors.New("course not found")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSurveyNotFound     = errors.New("survey template not found")
	ErrActivityNotFound   = errors.New("activity not found")
	ErrSubmissionNotFound = errors.New("submission not found")

	// data integrity: more than one current profile for one participant
	ErrProfileConflict = errors.New("multiple current profiles for participant")
)
