package repository

import (
	"time"

	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.First(&attempt, id).Error
	return &attempt, err
}

func (r *AttemptRepository) ListAnswers(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("quiz_attempt_id = ?", attemptID).Order("id asc").Find(&answers).Error
	return answers, err
}

// AttemptHistoryRow 用户历史成绩行，连表取测验标题
type AttemptHistoryRow struct {
	AttemptID uint      `gorm:"column:attempt_id" json:"attemptId"`
	QuizID    uint      `gorm:"column:quiz_id" json:"quizId"`
	QuizTitle string    `gorm:"column:quiz_title" json:"quizTitle"`
	Score     int       `gorm:"column:score" json:"score"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (r *AttemptRepository) ListByUser(userID uint) ([]AttemptHistoryRow, error) {
	var rows []AttemptHistoryRow
	err := r.DB.Table("quiz_attempts a").
		Select("a.id as attempt_id, a.quiz_id, q.title as quiz_title, a.score, a.created_at").
		Joins("JOIN quizzes q ON q.id = a.quiz_id").
		Where("a.user_id = ? AND a.deleted_at IS NULL", userID).
		Order("a.created_at desc, a.id desc").
		Scan(&rows).Error
	return rows, err
}

func (r *AttemptRepository) CountByUserAndQuiz(userID, quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error
	return count, err
}
