package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	IsPublic    bool   `gorm:"default:true" json:"isPublic"`
	CreatorID   uint   `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question 测验题目，题目不能脱离所属测验存在
// swagger:model Question
type Question struct {
	BaseModel
	QuizID       uint   `gorm:"index;type:bigint unsigned" json:"quizId"`
	QuestionText string `gorm:"type:text;not null" json:"questionText"`
}

func (Question) TableName() string {
	return "questions"
}

// Choice 题目选项，is_correct 标记该选项是否计分
// 一道题允许多个正确选项（多选题）
// swagger:model Choice
type Choice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	ChoiceText string `gorm:"type:text;not null" json:"choiceText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}
