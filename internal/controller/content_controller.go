package controller

import (
	"strconv"

	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
	StorageService *service.StorageService
}

func NewContentController(contentService *service.ContentService, storageService *service.StorageService) *ContentController {
	return &ContentController{ContentService: contentService, StorageService: storageService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

type categoryCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	ParentID *uint  `json:"parentId"`
}

// @Summary 创建分类
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body categoryCreateRequest true "分类"
// @Success 201 {object} util.Response
// @Router /api/categories [post]
func (c *ContentController) CreateCategory(ctx *gin.Context) {
	var req categoryCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	category, err := c.ContentService.CreateCategory(req.Name, req.ParentID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, category)
}

type categoryRenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary 重命名分类
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Param body body categoryRenameRequest true "新名称"
// @Success 200 {object} util.Response
// @Router /api/categories/{id} [put]
func (c *ContentController) RenameCategory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req categoryRenameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	category, err := c.ContentService.RenameCategory(id, req.Name)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, category)
}

type categoryMoveRequest struct {
	ParentID *uint `json:"parentId"`
}

// @Summary 移动分类（换父节点）
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Param body body categoryMoveRequest true "新父节点，null 表示提为根"
// @Success 200 {object} util.Response
// @Router /api/categories/{id}/move [put]
func (c *ContentController) MoveCategory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req categoryMoveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.MoveCategory(id, req.ParentID); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 分类路径（根到节点）
// @Tags 内容
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} util.Response
// @Router /api/categories/{id}/path [get]
func (c *ContentController) GetCategoryPath(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	path, err := c.ContentService.ResolvePath(ctx.Request.Context(), id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, path)
}

// @Summary 子分类列表
// @Tags 内容
// @Produce json
// @Param parentId query int false "父分类ID，缺省列根分类"
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *ContentController) ListCategories(ctx *gin.Context) {
	var parentID *uint
	if raw := ctx.Query("parentId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			util.BadRequest(ctx, "invalid parentId")
			return
		}
		v := uint(id)
		parentID = &v
	}
	categories, err := c.ContentService.ListChildCategories(parentID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// @Summary 删除分类
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "分类ID"
// @Param cascade query bool false "连同子树删除"
// @Success 200 {object} util.Response
// @Router /api/categories/{id} [delete]
func (c *ContentController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	cascade := ctx.Query("cascade") == "true"
	if err := c.ContentService.DeleteCategory(id, cascade); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建课程
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseCreateRequest true "课程"
// @Success 201 {object} util.Response
// @Router /api/courses [post]
func (c *ContentController) CreateCourse(ctx *gin.Context) {
	var req service.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.ContentService.CreateCourse(req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary 更新课程
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body service.CourseUpdateRequest true "课程"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *ContentController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.CourseUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.ContentService.UpdateCourse(id, req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 课程详情
// @Tags 内容
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *ContentController) GetCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	course, err := c.ContentService.GetCourse(id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary 按分类列课程
// @Tags 内容
// @Produce json
// @Param categoryId query int true "分类ID"
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	categoryID, err := strconv.Atoi(ctx.Query("categoryId"))
	if err != nil || categoryID <= 0 {
		util.BadRequest(ctx, "invalid categoryId")
		return
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.ContentService.ListCourses(uint(categoryID), page, limit)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary 删除课程
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param cascade query bool false "连同章节步骤删除"
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [delete]
func (c *ContentController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	cascade := ctx.Query("cascade") == "true"
	if err := c.ContentService.DeleteCourse(id, cascade); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建章节
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SectionCreateRequest true "章节"
// @Success 201 {object} util.Response
// @Router /api/sections [post]
func (c *ContentController) CreateSection(ctx *gin.Context) {
	var req service.SectionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	section, err := c.ContentService.CreateSection(req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, section)
}

// @Summary 更新章节
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "章节ID"
// @Param body body service.SectionUpdateRequest true "章节"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [put]
func (c *ContentController) UpdateSection(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.SectionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	section, err := c.ContentService.UpdateSection(id, req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, section)
}

// @Summary 课程章节列表（按 position 排序）
// @Tags 内容
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/sections [get]
func (c *ContentController) ListSections(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	sections, err := c.ContentService.ListSections(id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, sections)
}

// @Summary 删除章节
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "章节ID"
// @Param cascade query bool false "连同步骤删除"
// @Success 200 {object} util.Response
// @Router /api/sections/{id} [delete]
func (c *ContentController) DeleteSection(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	cascade := ctx.Query("cascade") == "true"
	if err := c.ContentService.DeleteSection(id, cascade); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 创建步骤
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StepCreateRequest true "步骤"
// @Success 201 {object} util.Response
// @Router /api/steps [post]
func (c *ContentController) CreateStep(ctx *gin.Context) {
	var req service.StepCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	step, err := c.ContentService.CreateStep(req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, step)
}

// @Summary 更新步骤
// @Tags 内容
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "步骤ID"
// @Param body body service.StepUpdateRequest true "步骤"
// @Success 200 {object} util.Response
// @Router /api/steps/{id} [put]
func (c *ContentController) UpdateStep(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.StepUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	step, err := c.ContentService.UpdateStep(id, req)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, step)
}

// @Summary 章节步骤列表（按 position 排序）
// @Tags 内容
// @Produce json
// @Param id path int true "章节ID"
// @Success 200 {object} util.Response
// @Router /api/sections/{id}/steps [get]
func (c *ContentController) ListSteps(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	steps, err := c.ContentService.ListSteps(id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, steps)
}

// @Summary 删除步骤
// @Tags 内容
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "步骤ID"
// @Param cascade query bool false "连同提交记录删除"
// @Success 200 {object} util.Response
// @Router /api/steps/{id} [delete]
func (c *ContentController) DeleteStep(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	cascade := ctx.Query("cascade") == "true"
	if err := c.ContentService.DeleteStep(id, cascade); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 上传步骤附件
// @Tags 内容
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "步骤ID"
// @Param file formData file true "附件"
// @Success 200 {object} util.Response
// @Router /api/steps/{id}/attachments [post]
func (c *ContentController) UploadStepAttachment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	url, err := c.StorageService.UploadStepAttachment(
		ctx.Request.Context(), id, file.Filename, src, file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}

// @Summary 报名课程
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *ContentController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.Enroll(user.UserID, id); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 退课
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/enroll [delete]
func (c *ContentController) Withdraw(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.ContentService.Withdraw(user.UserID, id); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type assignTeacherRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

// @Summary 指派授课教师
// @Tags 选课
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param body body assignTeacherRequest true "教师"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/teachers [post]
func (c *ContentController) AssignTeacher(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req assignTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.AssignTeacher(req.UserID, id); err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary 课程学员列表
// @Tags 选课
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/students [get]
func (c *ContentController) ListStudents(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	students, err := c.ContentService.ListStudents(id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// @Summary 课程教师列表
// @Tags 选课
// @Produce json
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/teachers [get]
func (c *ContentController) ListTeachers(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	teachers, err := c.ContentService.ListTeachers(id)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, teachers)
}
