package repository

import (
	"quizhub_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// QuestionWithChoices 建档时的一道题及其全部选项
type QuestionWithChoices struct {
	Question model.Question
	Choices  []model.Choice
}

// CreateAggregate 在单个事务内写入测验、题目、选项三层
// 先写父行并用返回的主键关联子行，任一步失败整体回滚
func (r *QuizRepository) CreateAggregate(quiz *model.Quiz, questions []QuestionWithChoices) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}

		for i := range questions {
			q := &questions[i].Question
			q.QuizID = quiz.ID
			if err := tx.Create(q).Error; err != nil {
				return err
			}

			for j := range questions[i].Choices {
				c := &questions[i].Choices[j]
				c.QuestionID = q.ID
				if err := tx.Create(c).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) List(page, limit int) ([]model.Quiz, int64, error) {
	var quizzes []model.Quiz
	var total int64
	query := r.DB.Model(&model.Quiz{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&quizzes).Error
	return quizzes, total, err
}

func (r *QuizRepository) ListAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("id asc").Find(&quizzes).Error
	return quizzes, err
}

// ListQuestions 按主键排序，保证聚合输出顺序稳定
func (r *QuizRepository) ListQuestions(quizID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("quiz_id = ?", quizID).Order("id asc").Find(&qs).Error
	return qs, err
}

func (r *QuizRepository) ListChoices(questionID uint) ([]model.Choice, error) {
	var cs []model.Choice
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&cs).Error
	return cs, err
}

func (r *QuizRepository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}
