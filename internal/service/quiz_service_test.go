package service

import (
	"errors"
	"testing"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"
)

func capitalsQuizRequest() CreateQuizRequest {
	return CreateQuizRequest{
		Title:       "World Capitals",
		Description: "Basic geography",
		Questions: []QuestionRequest{
			{
				Text: "What is the capital of France?",
				Choices: []ChoiceRequest{
					{Text: "Paris", IsCorrect: true},
					{Text: "London"},
					{Text: "Berlin"},
				},
			},
			{
				Text: "What is the capital of Japan?",
				Choices: []ChoiceRequest{
					{Text: "Osaka"},
					{Text: "Tokyo", IsCorrect: true},
				},
			},
		},
	}
}

func TestCreateQuizPersistsAggregate(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)
	creator := seedUser(t, db, "author@example.com")

	quiz, err := svc.CreateQuiz(creator.ID, capitalsQuizRequest())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if quiz.ID == 0 {
		t.Fatal("expected quiz ID to be assigned")
	}
	if quiz.CreatorID != creator.ID {
		t.Errorf("CreatorID = %d, want %d", quiz.CreatorID, creator.ID)
	}
	if !quiz.IsPublic {
		t.Error("expected IsPublic to default to true")
	}

	view, err := svc.GetQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("questions = %d, want 2", len(view.Questions))
	}
	if view.Questions[0].Text != "What is the capital of France?" {
		t.Errorf("first question = %q, out of insertion order", view.Questions[0].Text)
	}
	if len(view.Questions[0].Choices) != 3 || len(view.Questions[1].Choices) != 2 {
		t.Fatalf("choice counts = %d/%d, want 3/2",
			len(view.Questions[0].Choices), len(view.Questions[1].Choices))
	}
	if view.Questions[0].Choices[0].Text != "Paris" || !view.Questions[0].Choices[0].IsCorrect {
		t.Errorf("first choice = %+v, want Paris marked correct", view.Questions[0].Choices[0])
	}

	// 每个选项都挂在自己的题目上
	var crossLinked int64
	db.Model(&model.Choice{}).
		Where("question_id NOT IN (?)", db.Model(&model.Question{}).Select("id").Where("quiz_id = ?", quiz.ID)).
		Count(&crossLinked)
	if crossLinked != 0 {
		t.Errorf("found %d choices linked outside the quiz", crossLinked)
	}
}

func TestCreateQuizRejectsEmptyQuestionList(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	_, err := svc.CreateQuiz(1, CreateQuizRequest{Title: "Empty"})
	if !errors.Is(err, util.ErrEmptyQuiz) {
		t.Fatalf("err = %v, want ErrEmptyQuiz", err)
	}

	var count int64
	db.Model(&model.Quiz{}).Count(&count)
	if count != 0 {
		t.Errorf("quiz rows = %d, want 0", count)
	}
}

func TestCreateQuizRejectsQuestionWithoutChoices(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	req := capitalsQuizRequest()
	req.Questions = append(req.Questions, QuestionRequest{Text: "Orphan question"})

	_, err := svc.CreateQuiz(1, req)
	if !errors.Is(err, util.ErrQuestionWithoutChoices) {
		t.Fatalf("err = %v, want ErrQuestionWithoutChoices", err)
	}

	// 校验失败时不留任何残行
	var quizzes, questions, choices int64
	db.Model(&model.Quiz{}).Count(&quizzes)
	db.Model(&model.Question{}).Count(&questions)
	db.Model(&model.Choice{}).Count(&choices)
	if quizzes != 0 || questions != 0 || choices != 0 {
		t.Errorf("rows after rejected create = %d/%d/%d, want 0/0/0", quizzes, questions, choices)
	}
}

func TestCreateQuizHonorsPrivateFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	req := capitalsQuizRequest()
	req.IsPublic = boolPtr(false)

	quiz, err := svc.CreateQuiz(1, req)
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	if quiz.IsPublic {
		t.Error("expected IsPublic = false")
	}
}

func TestGetQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	_, err := svc.GetQuiz(42)
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestGetQuizQuestionWithoutChoicesYieldsEmptyList(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	quiz, err := svc.CreateQuiz(1, capitalsQuizRequest())
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	// 绕过服务层制造零选项题目，读取端必须容忍
	orphan := &model.Question{QuizID: quiz.ID, QuestionText: "No choices yet"}
	if err := db.Create(orphan).Error; err != nil {
		t.Fatalf("insert orphan question: %v", err)
	}

	view, err := svc.GetQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("GetQuiz: %v", err)
	}
	if len(view.Questions) != 3 {
		t.Fatalf("questions = %d, want 3", len(view.Questions))
	}
	last := view.Questions[2]
	if last.Text != "No choices yet" || len(last.Choices) != 0 {
		t.Errorf("orphan question view = %+v, want empty choice list", last)
	}
}

func TestListQuizAggregates(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	if _, err := svc.CreateQuiz(1, capitalsQuizRequest()); err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	second := CreateQuizRequest{
		Title: "Arithmetic",
		Questions: []QuestionRequest{
			{Text: "2 + 2 = ?", Choices: []ChoiceRequest{
				{Text: "3"},
				{Text: "4", IsCorrect: true},
			}},
		},
	}
	if _, err := svc.CreateQuiz(2, second); err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}

	views, err := svc.ListQuizAggregates()
	if err != nil {
		t.Fatalf("ListQuizAggregates: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("views = %d, want 2", len(views))
	}
	if views[0].Title != "World Capitals" || views[1].Title != "Arithmetic" {
		t.Errorf("titles = %q, %q, out of insertion order", views[0].Title, views[1].Title)
	}
	if len(views[1].Questions) != 1 || len(views[1].Questions[0].Choices) != 2 {
		t.Errorf("second quiz structure = %+v, want 1 question with 2 choices", views[1].Questions)
	}
}

func TestListQuizzesPaging(t *testing.T) {
	db := newTestDB(t)
	svc := newQuizService(db)

	for i := 0; i < 5; i++ {
		req := CreateQuizRequest{
			Title: "Quiz",
			Questions: []QuestionRequest{
				{Text: "Q", Choices: []ChoiceRequest{{Text: "A", IsCorrect: true}}},
			},
		}
		if _, err := svc.CreateQuiz(1, req); err != nil {
			t.Fatalf("CreateQuiz #%d: %v", i, err)
		}
	}

	page, total, err := svc.ListQuizzes(2, 2)
	if err != nil {
		t.Fatalf("ListQuizzes: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(page) != 2 {
		t.Errorf("page size = %d, want 2", len(page))
	}
}
