package controller

import (
	"strconv"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// @Summary 提交作答
// @Tags 提交
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "步骤ID"
// @Param body body service.AttemptPayload true "作答内容，按任务类型取 text/optionIds/placements"
// @Success 201 {object} util.Response
// @Router /api/steps/{id}/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	stepID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var payload service.AttemptPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	attempt, err := c.AttemptService.SubmitAttempt(user.UserID, stepID, payload)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// @Summary 我在某步骤的提交记录
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "步骤ID"
// @Success 200 {object} util.Response
// @Router /api/steps/{id}/attempts [get]
func (c *AttemptController) ListStepAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	stepID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	attempts, err := c.AttemptService.ListByUserStep(user.UserID, stepID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary 我的全部提交记录
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) ListMyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.AttemptService.ListByUser(user.UserID, page, limit)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: attempts, Total: total, Page: page, Limit: limit})
}

// @Summary 提交详情（本人或教师可见）
// @Tags 提交
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "提交ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	detail, err := c.AttemptService.GetAttemptDetail(id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	if detail.Attempt.UserID != user.UserID && user.Role != model.Teacher && user.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, detail)
}
