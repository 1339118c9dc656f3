package controller

import (
	"errors"

	"quizhub_backend/internal/service"
	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// SubmitQuiz godoc
// @Summary 提交测验答案
// @Description 提交答案数组，判分并返回得分
// @Tags 答题
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body []service.AnswerSubmission true "答案数组"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "提交为空或混合了多个测验"
// @Failure 401 {object} util.Response "未授权"
// @Failure 500 {object} util.Response "服务器内部错误"
// @Router /api/quizzes/submit [post]
func (c *AttemptController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var answers []service.AnswerSubmission
	if err := ctx.ShouldBindJSON(&answers); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitQuiz(user.UserID, answers)
	if err != nil {
		if errors.Is(err, util.ErrEmptySubmission) || errors.Is(err, util.ErrMixedQuizSubmission) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message": "Quiz submitted successfully",
		"score":   result.Score,
	})
}

// ListAttempts godoc
// @Summary 历史成绩
// @Description 获取当前用户的全部答题记录及得分
// @Tags 答题
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/quizzes/attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	results, err := c.AttemptService.ListUserAttempts(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	if len(results) == 0 {
		util.Success(ctx, gin.H{
			"results": results,
			"message": "No quiz attempts found for this user.",
		})
		return
	}

	util.Success(ctx, gin.H{"results": results})
}
