package service

import (
	"errors"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	Repo *repository.QuizRepository
}

func NewQuizService(repo *repository.QuizRepository) *QuizService {
	return &QuizService{Repo: repo}
}

type ChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionRequest struct {
	Text    string          `json:"text" binding:"required"`
	Choices []ChoiceRequest `json:"choices"`
}

type CreateQuizRequest struct {
	Title       string            `json:"title" binding:"required"`
	Description string            `json:"description"`
	IsPublic    *bool             `json:"is_public"`
	Questions   []QuestionRequest `json:"questions"`
}

// CreateQuiz 整体建档：校验通过后在一个事务内写入全部行
// creatorID 永远取自会话身份，不信任请求体
func (s *QuizService) CreateQuiz(creatorID uint, req CreateQuizRequest) (*model.Quiz, error) {
	if len(req.Questions) == 0 {
		return nil, util.ErrEmptyQuiz
	}
	for _, q := range req.Questions {
		if len(q.Choices) == 0 {
			return nil, util.ErrQuestionWithoutChoices
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    isPublic,
		CreatorID:   creatorID,
	}

	questions := make([]repository.QuestionWithChoices, len(req.Questions))
	for i, q := range req.Questions {
		questions[i].Question = model.Question{QuestionText: q.Text}
		questions[i].Choices = make([]model.Choice, len(q.Choices))
		for j, c := range q.Choices {
			// 正确性标记按提交原样保存，不强制每题恰好一个正确选项
			questions[i].Choices[j] = model.Choice{
				ChoiceText: c.Text,
				IsCorrect:  c.IsCorrect,
			}
		}
	}

	if err := s.Repo.CreateAggregate(quiz, questions); err != nil {
		return nil, err
	}
	return quiz, nil
}

type ChoiceView struct {
	ID        uint   `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type QuestionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Choices []ChoiceView `json:"choices"`
}

type QuizView struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	IsPublic    bool           `json:"isPublic"`
	CreatorID   uint           `json:"creatorId"`
	Questions   []QuestionView `json:"questions"`
}

// GetQuiz 还原嵌套聚合，零选项的题目返回空选项列表而非错误
func (s *QuizService) GetQuiz(id uint) (*QuizView, error) {
	quiz, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.assemble(quiz)
}

func (s *QuizService) assemble(quiz *model.Quiz) (*QuizView, error) {
	questions, err := s.Repo.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}

	view := &QuizView{
		ID:          quiz.ID,
		Title:       quiz.Title,
		Description: quiz.Description,
		IsPublic:    quiz.IsPublic,
		CreatorID:   quiz.CreatorID,
		Questions:   make([]QuestionView, len(questions)),
	}

	for i, q := range questions {
		choices, err := s.Repo.ListChoices(q.ID)
		if err != nil {
			return nil, err
		}
		qv := QuestionView{
			ID:      q.ID,
			Text:    q.QuestionText,
			Choices: make([]ChoiceView, len(choices)),
		}
		for j, c := range choices {
			qv.Choices[j] = ChoiceView{
				ID:        c.ID,
				Text:      c.ChoiceText,
				IsCorrect: c.IsCorrect,
			}
		}
		view.Questions[i] = qv
	}

	return view, nil
}

func (s *QuizService) ListQuizzes(page, limit int) ([]model.Quiz, int64, error) {
	return s.Repo.List(page, limit)
}

// ListQuizAggregates 全量拉取所有测验的嵌套结构
func (s *QuizService) ListQuizAggregates() ([]QuizView, error) {
	quizzes, err := s.Repo.ListAll()
	if err != nil {
		return nil, err
	}

	views := make([]QuizView, len(quizzes))
	for i := range quizzes {
		v, err := s.assemble(&quizzes[i])
		if err != nil {
			return nil, err
		}
		views[i] = *v
	}
	return views, nil
}
