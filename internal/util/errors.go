package util

import "errors"

var (
	ErrUserNotFound           = errors.New("用户不存在")
	ErrEmailRegistered        = errors.New("该邮箱已被注册")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrQuizNotFound           = errors.New("quiz not found")
	ErrEmptyQuiz              = errors.New("quiz must have at least one question")
	ErrQuestionWithoutChoices = errors.New("all questions must have at least one choice")
	ErrEmptySubmission        = errors.New("submission must contain at least one answer")
	ErrMixedQuizSubmission    = errors.New("all answers must belong to the same quiz")
)
