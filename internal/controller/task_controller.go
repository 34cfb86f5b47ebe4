package controller

import (
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// @Summary 给步骤挂任务
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "步骤ID"
// @Param body body service.TaskAttachRequest true "任务定义"
// @Success 201 {object} util.Response
// @Router /api/steps/{id}/task [post]
func (c *TaskController) AttachTask(ctx *gin.Context) {
	stepID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.TaskAttachRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	def, err := c.TaskService.AttachTask(stepID, req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, def)
}

// @Summary 查询步骤任务
// @Tags 任务
// @Produce json
// @Param id path int true "步骤ID"
// @Success 200 {object} util.Response
// @Router /api/steps/{id}/task [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	stepID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	def, err := c.TaskService.DefinitionForStep(stepID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, def)
}

type testOptionsRequest struct {
	Options []service.TestOptionRequest `json:"options" binding:"required"`
}

// @Summary 整组替换测验选项
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验任务ID"
// @Param body body testOptionsRequest true "选项"
// @Success 200 {object} util.Response
// @Router /api/test-tasks/{id}/options [put]
func (c *TaskController) ReplaceTestOptions(ctx *gin.Context) {
	taskID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req testOptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	options, err := c.TaskService.ReplaceTestOptions(taskID, req.Options)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, options)
}

// @Summary 追加测验选项
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验任务ID"
// @Param body body service.TestOptionRequest true "选项"
// @Success 201 {object} util.Response
// @Router /api/test-tasks/{id}/options [post]
func (c *TaskController) AddTestOption(ctx *gin.Context) {
	taskID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.TestOptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	option, err := c.TaskService.AddTestOption(taskID, req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, option)
}

// @Summary 单选任务换正确项
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验任务ID"
// @Param optionId path int true "选项ID"
// @Success 200 {object} util.Response
// @Router /api/test-tasks/{id}/options/{optionId}/correct [put]
func (c *TaskController) SetCorrectTestOption(ctx *gin.Context) {
	taskID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	optionID, ok := parseID(ctx, "optionId")
	if !ok {
		return
	}
	if err := c.TaskService.SetCorrectTestOption(taskID, optionID); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 测验选项列表
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验任务ID"
// @Success 200 {object} util.Response
// @Router /api/test-tasks/{id}/options [get]
func (c *TaskController) ListTestOptions(ctx *gin.Context) {
	taskID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	options, err := c.TaskService.TestOptions(taskID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, options)
}

type sortingOptionsRequest struct {
	Options []service.SortingOptionRequest `json:"options" binding:"required"`
}

// @Summary 整组替换排序选项
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "排序任务ID"
// @Param body body sortingOptionsRequest true "选项，correct_position 需构成 1..N 排列"
// @Success 200 {object} util.Response
// @Router /api/sorting-tasks/{id}/options [put]
func (c *TaskController) ReplaceSortingOptions(ctx *gin.Context) {
	taskID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req sortingOptionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	options, err := c.TaskService.ReplaceSortingOptions(taskID, req.Options)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, options)
}

// @Summary 排序选项列表
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "排序任务ID"
// @Success 200 {object} util.Response
// @Router /api/sorting-tasks/{id}/options [get]
func (c *TaskController) ListSortingOptions(ctx *gin.Context) {
	taskID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	options, err := c.TaskService.SortingOptions(taskID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, options)
}
