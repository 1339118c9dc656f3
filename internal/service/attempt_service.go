package service

import (
	"errors"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"
	"quizhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type AttemptService struct {
	Repo *repository.AttemptRepository
}

func NewAttemptService(repo *repository.AttemptRepository) *AttemptService {
	return &AttemptService{Repo: repo}
}

type AnswerSubmission struct {
	QuizID   uint `json:"quiz_id" binding:"required"`
	ChoiceID uint `json:"choice_id" binding:"required"`
}

type AttemptResult struct {
	AttemptID uint `json:"attemptId"`
	QuizID    uint `json:"quizId"`
	Score     int  `json:"score"`
}

// SubmitQuiz 在单个事务内判分并落库
// 得分规则：每个选中的选项若 is_correct 为真计 1 分；选项不存在计 0 分且不报错
// 同一测验可重复提交，每次生成独立的答题记录
func (s *AttemptService) SubmitQuiz(userID uint, answers []AnswerSubmission) (*AttemptResult, error) {
	if len(answers) == 0 {
		return nil, util.ErrEmptySubmission
	}

	quizID := answers[0].QuizID
	for _, a := range answers {
		if a.QuizID != quizID {
			return nil, util.ErrMixedQuizSubmission
		}
	}

	attempt := &model.QuizAttempt{
		QuizID: quizID,
		UserID: userID,
	}

	err := s.Repo.DB.Transaction(func(tx *gorm.DB) error {
		score := 0
		for _, a := range answers {
			var choice model.Choice
			if err := tx.First(&choice, a.ChoiceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}
			if choice.IsCorrect {
				score++
			}
		}

		attempt.Score = score
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		for _, a := range answers {
			answer := &model.Answer{
				QuizAttemptID: attempt.ID,
				ChoiceID:      a.ChoiceID,
			}
			if err := tx.Create(answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.QuizAttemptCounter.Inc()

	return &AttemptResult{
		AttemptID: attempt.ID,
		QuizID:    attempt.QuizID,
		Score:     attempt.Score,
	}, nil
}

func (s *AttemptService) ListUserAttempts(userID uint) ([]repository.AttemptHistoryRow, error) {
	return s.Repo.ListByUser(userID)
}
