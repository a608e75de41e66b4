package app_errors

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrIncorrectPassword = errors.New("incorrect password")
var ErrTokenNotFound = errors.New("token not found")
var ErrTokenExpired = errors.New("token expired")
var ErrCourseNotFound = errors.New("course not found")
var ErrCourseNotPublished = errors.New("course not published")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrNotEnrolled = errors.New("user is not enrolled in course")
var ErrAlreadyEnrolled = errors.New("user is already enrolled in course")
var ErrQuizNotFound = errors.New("quiz not found for lesson")
var ErrAttemptNotFound = errors.New("quiz attempt not found")
var ErrAttemptSubmitted = errors.New("quiz attempt already submitted")
var ErrUnansweredQuestions = errors.New("not all questions answered")
var ErrMissingVideoSource = errors.New("lesson has a video id but no video source type")
var ErrMissingVideoID = errors.New("lesson has a video source type but no video id")
var ErrVideoUnavailable = errors.New("video temporarily unavailable")
var ErrUnknownVideoSource = errors.New("unknown video source type")
