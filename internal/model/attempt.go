package model

// QuizAttempt 一次答题记录，score 为答对的题数
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID uint  `gorm:"index;type:bigint unsigned" json:"quizId"`
	UserID uint  `gorm:"index;type:bigint unsigned" json:"userId"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Score  int   `gorm:"not null;default:0" json:"score"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// Answer 答题记录中的单个选择
// swagger:model Answer
type Answer struct {
	BaseModel
	QuizAttemptID uint `gorm:"index;type:bigint unsigned" json:"quizAttemptId"`
	ChoiceID      uint `gorm:"index;type:bigint unsigned" json:"choiceId"`
}

func (Answer) TableName() string {
	return "answers"
}
