package controller

import (
	"strconv"

	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// @Summary 待评审队列（不含自己的提交和已评过的）
// @Tags 评审
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "条数上限"
// @Success 200 {object} util.Response
// @Router /api/reviews/pending [get]
func (c *ReviewController) ListPending(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, err := c.ReviewService.PendingAttempts(user.UserID, limit)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

type reviewSubmitRequest struct {
	Score float64 `json:"score"`
}

// @Summary 提交评审
// @Tags 评审
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "提交ID"
// @Param body body reviewSubmitRequest true "评分"
// @Success 201 {object} util.Response
// @Router /api/attempts/{id}/reviews [post]
func (c *ReviewController) SubmitReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req reviewSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	review, err := c.ReviewService.SubmitReview(user.UserID, attemptID, req.Score)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Created(ctx, review)
}

// @Summary 某提交收到的全部评审
// @Tags 评审
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "提交ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	attemptID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	reviews, err := c.ReviewService.ReviewsForAttempt(attemptID)
	if err != nil {
		util.HandleDomainError(ctx, err)
		return
	}
	util.Success(ctx, reviews)
}
