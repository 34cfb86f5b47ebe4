package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const categoryPathCacheTTL = 10 * time.Minute

type ContentService struct {
	CategoryRepo *repository.CategoryRepository
	CourseRepo   *repository.CourseRepository
	SectionRepo  *repository.SectionRepository
	StepRepo     *repository.StepRepository
	DB           *gorm.DB
	Redis        *redis.Client
}

func NewContentService(
	categoryRepo *repository.CategoryRepository,
	courseRepo *repository.CourseRepository,
	sectionRepo *repository.SectionRepository,
	stepRepo *repository.StepRepository,
	db *gorm.DB,
	rdb *redis.Client,
) *ContentService {
	return &ContentService{
		CategoryRepo: categoryRepo,
		CourseRepo:   courseRepo,
		SectionRepo:  sectionRepo,
		StepRepo:     stepRepo,
		DB:           db,
		Redis:        rdb,
	}
}

func (s *ContentService) CreateCategory(name string, parentID *uint) (*model.Category, error) {
	if name == "" {
		return nil, util.ValidationError("category", 0, "name required")
	}
	if parentID != nil {
		if _, err := s.CategoryRepo.FindByID(*parentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("category", *parentID)
			}
			return nil, err
		}
	}
	category := &model.Category{Name: name, ParentID: parentID}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ContentService) RenameCategory(id uint, name string) (*model.Category, error) {
	if name == "" {
		return nil, util.ValidationError("category", id, "name required")
	}
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("category", id)
		}
		return nil, err
	}
	category.Name = name
	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	s.invalidatePathCache(context.Background())
	return category, nil
}

// MoveCategory 换父节点。环检测和写入在同一事务内，并发重挂不会引入环
func (s *ContentService) MoveCategory(id uint, newParentID *uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := lockForUpdate(tx).First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("category", id)
			}
			return err
		}

		if newParentID != nil {
			if *newParentID == id {
				return util.StructuralError("category", id, "category cannot be its own parent")
			}
			// 沿祖先链上溯，目标出现在链上即成环
			seen := map[uint]bool{id: true}
			cur := *newParentID
			for {
				if seen[cur] {
					return util.StructuralError("category", id, fmt.Sprintf("moving under %d would create a cycle", *newParentID))
				}
				seen[cur] = true
				var ancestor model.Category
				if err := lockForUpdate(tx).First(&ancestor, cur).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return util.NotFoundError("category", cur)
					}
					return err
				}
				if ancestor.ParentID == nil {
					break
				}
				cur = *ancestor.ParentID
			}
		}

		category.ParentID = newParentID
		return tx.Save(&category).Error
	})
	if err != nil {
		return err
	}

	s.invalidatePathCache(context.Background())
	return nil
}

// ResolvePath 从根到节点的有序路径，结果进 redis 缓存
func (s *ContentService) ResolvePath(ctx context.Context, categoryID uint) ([]model.Category, error) {
	cacheKey := fmt.Sprintf("category:path:%d", categoryID)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var path []model.Category
			if json.Unmarshal([]byte(cached), &path) == nil {
				return path, nil
			}
		}
	}

	var path []model.Category
	seen := map[uint]bool{}
	cur := categoryID
	for {
		if seen[cur] {
			return nil, util.StructuralError("category", categoryID, "cycle detected in ancestor chain")
		}
		seen[cur] = true
		category, err := s.CategoryRepo.FindByID(cur)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NotFoundError("category", cur)
			}
			return nil, err
		}
		path = append([]model.Category{*category}, path...)
		if category.ParentID == nil {
			break
		}
		cur = *category.ParentID
	}

	if s.Redis != nil {
		if data, err := json.Marshal(path); err == nil {
			s.Redis.Set(ctx, cacheKey, data, categoryPathCacheTTL)
		}
	}
	return path, nil
}

func (s *ContentService) invalidatePathCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	keys, err := s.Redis.Keys(ctx, "category:path:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.Redis.Del(ctx, keys...)
}

func (s *ContentService) ListChildCategories(parentID *uint) ([]model.Category, error) {
	return s.CategoryRepo.ListChildren(parentID)
}

// DeleteCategory 有子分类或课程时拒绝；cascade 时整棵子树连同课程一起删
func (s *ContentService) DeleteCategory(id uint, cascade bool) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.deleteCategoryTx(tx, id, cascade)
	})
	if err != nil {
		return err
	}
	s.invalidatePathCache(context.Background())
	return nil
}

func (s *ContentService) deleteCategoryTx(tx *gorm.DB, id uint, cascade bool) error {
	var category model.Category
	if err := lockForUpdate(tx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("category", id)
		}
		return err
	}

	var children []model.Category
	if err := tx.Where("parent_id = ?", id).Find(&children).Error; err != nil {
		return err
	}
	var courses []model.Course
	if err := tx.Where("category_id = ?", id).Find(&courses).Error; err != nil {
		return err
	}

	if !cascade && (len(children) > 0 || len(courses) > 0) {
		return util.DependencyError("category", id, "category has child categories or courses")
	}

	for _, child := range children {
		if err := s.deleteCategoryTx(tx, child.ID, true); err != nil {
			return err
		}
	}
	for _, course := range courses {
		if err := s.deleteCourseTx(tx, course.ID, true); err != nil {
			return err
		}
	}
	return tx.Delete(&model.Category{}, id).Error
}

type CourseCreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	CategoryID  uint       `json:"categoryId" binding:"required"`
}

func validateTimeWindow(entity string, id uint, start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return util.ValidationError(entity, id, "start_time must not be after end_time")
	}
	return nil
}

func (s *ContentService) CreateCourse(req CourseCreateRequest) (*model.Course, error) {
	if err := validateTimeWindow("course", 0, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.CategoryRepo.FindByID(req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("category", req.CategoryID)
		}
		return nil, err
	}
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CategoryID:  req.CategoryID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

type CourseUpdateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func (s *ContentService) UpdateCourse(id uint, req CourseUpdateRequest) (*model.Course, error) {
	if err := validateTimeWindow("course", id, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", id)
		}
		return nil, err
	}
	course.Title = req.Title
	course.Description = req.Description
	course.StartTime = req.StartTime
	course.EndTime = req.EndTime
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *ContentService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", id)
		}
		return nil, err
	}
	return course, nil
}

func (s *ContentService) ListCourses(categoryID uint, page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.ListByCategory(categoryID, page, limit)
}

func (s *ContentService) DeleteCourse(id uint, cascade bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.deleteCourseTx(tx, id, cascade)
	})
}

func (s *ContentService) deleteCourseTx(tx *gorm.DB, id uint, cascade bool) error {
	var course model.Course
	if err := lockForUpdate(tx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("course", id)
		}
		return err
	}

	var sections []model.Section
	if err := tx.Where("course_id = ?", id).Find(&sections).Error; err != nil {
		return err
	}
	if !cascade && len(sections) > 0 {
		return util.DependencyError("course", id, "course has sections")
	}

	for _, section := range sections {
		if err := s.deleteSectionTx(tx, section.ID, true); err != nil {
			return err
		}
	}
	if err := tx.Where("course_id = ?", id).Delete(&model.UserStudyingCourse{}).Error; err != nil {
		return err
	}
	if err := tx.Where("course_id = ?", id).Delete(&model.UserTeachingCourse{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Course{}, id).Error
}

type SectionCreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	CourseID    uint       `json:"courseId" binding:"required"`
}

func (s *ContentService) CreateSection(req SectionCreateRequest) (*model.Section, error) {
	if err := validateTimeWindow("section", 0, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.CourseRepo.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", req.CourseID)
		}
		return nil, err
	}

	var section *model.Section
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Section{}).Where("course_id = ?", req.CourseID).Count(&count).Error; err != nil {
			return err
		}
		section = &model.Section{
			Title:       req.Title,
			Description: req.Description,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			Position:    int(count) + 1,
			CourseID:    req.CourseID,
		}
		return tx.Create(section).Error
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

type SectionUpdateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
}

func (s *ContentService) UpdateSection(id uint, req SectionUpdateRequest) (*model.Section, error) {
	if err := validateTimeWindow("section", id, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	section, err := s.SectionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("section", id)
		}
		return nil, err
	}
	section.Title = req.Title
	section.Description = req.Description
	section.StartTime = req.StartTime
	section.EndTime = req.EndTime
	if err := s.SectionRepo.Update(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *ContentService) ListSections(courseID uint) ([]model.Section, error) {
	return s.SectionRepo.ListByCourse(courseID)
}

func (s *ContentService) DeleteSection(id uint, cascade bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.deleteSectionTx(tx, id, cascade)
	})
}

func (s *ContentService) deleteSectionTx(tx *gorm.DB, id uint, cascade bool) error {
	var section model.Section
	if err := lockForUpdate(tx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("section", id)
		}
		return err
	}

	var steps []model.Step
	if err := tx.Where("section_id = ?", id).Find(&steps).Error; err != nil {
		return err
	}
	if !cascade && len(steps) > 0 {
		return util.DependencyError("section", id, "section has steps")
	}

	for _, step := range steps {
		if err := s.deleteStepTx(tx, step.ID, true); err != nil {
			return err
		}
	}
	return tx.Delete(&model.Section{}, id).Error
}

type StepCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	MaxScore    int    `json:"maxScore"`
	MaxAttempts *int   `json:"maxAttempts"`
	SectionID   uint   `json:"sectionId" binding:"required"`
}

func (s *ContentService) CreateStep(req StepCreateRequest) (*model.Step, error) {
	if req.MaxScore < 0 {
		return nil, util.ValidationError("step", 0, "max_score must be >= 0")
	}
	if req.MaxAttempts != nil && *req.MaxAttempts < 1 {
		return nil, util.ValidationError("step", 0, "max_attempts must be >= 1 when set")
	}
	if _, err := s.SectionRepo.FindByID(req.SectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("section", req.SectionID)
		}
		return nil, err
	}

	var step *model.Step
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Step{}).Where("section_id = ?", req.SectionID).Count(&count).Error; err != nil {
			return err
		}
		step = &model.Step{
			Title:       req.Title,
			Content:     req.Content,
			MaxScore:    req.MaxScore,
			MaxAttempts: req.MaxAttempts,
			Position:    int(count) + 1,
			SectionID:   req.SectionID,
		}
		return tx.Create(step).Error
	})
	if err != nil {
		return nil, err
	}
	return step, nil
}

type StepUpdateRequest struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	MaxScore    int    `json:"maxScore"`
	MaxAttempts *int   `json:"maxAttempts"`
}

func (s *ContentService) UpdateStep(id uint, req StepUpdateRequest) (*model.Step, error) {
	if req.MaxScore < 0 {
		return nil, util.ValidationError("step", id, "max_score must be >= 0")
	}
	if req.MaxAttempts != nil && *req.MaxAttempts < 1 {
		return nil, util.ValidationError("step", id, "max_attempts must be >= 1 when set")
	}
	step, err := s.StepRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("step", id)
		}
		return nil, err
	}
	step.Title = req.Title
	step.Content = req.Content
	step.MaxScore = req.MaxScore
	step.MaxAttempts = req.MaxAttempts
	if err := s.StepRepo.Update(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *ContentService) ListSteps(sectionID uint) ([]model.Step, error) {
	return s.StepRepo.ListBySection(sectionID)
}

func (s *ContentService) DeleteStep(id uint, cascade bool) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.deleteStepTx(tx, id, cascade)
	})
}

func (s *ContentService) deleteStepTx(tx *gorm.DB, id uint, cascade bool) error {
	var step model.Step
	if err := lockForUpdate(tx).First(&step, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("step", id)
		}
		return err
	}

	var attempts []model.Attempt
	if err := tx.Where("step_id = ?", id).Find(&attempts).Error; err != nil {
		return err
	}
	if !cascade && len(attempts) > 0 {
		return util.DependencyError("step", id, "step has attempts")
	}

	for _, attempt := range attempts {
		if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&model.UserInput{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&model.AttemptTestOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&model.AttemptSortingOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attempt_id = ?", attempt.ID).Delete(&model.Review{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("step_id = ?", id).Delete(&model.Attempt{}).Error; err != nil {
		return err
	}

	// 任务变体和选项
	var testTask model.TestTask
	if err := tx.Where("step_id = ?", id).First(&testTask).Error; err == nil {
		if err := tx.Where("task_id = ?", testTask.ID).Delete(&model.TestOption{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.TestTask{}, testTask.ID).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	var sortingTask model.SortingTask
	if err := tx.Where("step_id = ?", id).First(&sortingTask).Error; err == nil {
		if err := tx.Where("task_id = ?", sortingTask.ID).Delete(&model.SortingOption{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.SortingTask{}, sortingTask.ID).Error; err != nil {
			return err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := tx.Where("step_id = ?", id).Delete(&model.TextTask{}).Error; err != nil {
		return err
	}
	if err := tx.Where("step_id = ?", id).Delete(&model.OpenEndedTask{}).Error; err != nil {
		return err
	}

	return tx.Delete(&model.Step{}, id).Error
}

func (s *ContentService) Enroll(userID, courseID uint) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("course", courseID)
		}
		return err
	}
	studying, err := s.CourseRepo.IsStudying(userID, courseID)
	if err != nil {
		return err
	}
	if studying {
		return util.ConflictError("user_studying_course", courseID, "already enrolled")
	}
	return s.CourseRepo.CreateStudying(&model.UserStudyingCourse{UserID: userID, CourseID: courseID})
}

func (s *ContentService) Withdraw(userID, courseID uint) error {
	affected, err := s.CourseRepo.DeleteStudying(userID, courseID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return util.NotFoundError("user_studying_course", courseID)
	}
	return nil
}

func (s *ContentService) AssignTeacher(userID, courseID uint) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("course", courseID)
		}
		return err
	}
	teaching, err := s.CourseRepo.IsTeaching(userID, courseID)
	if err != nil {
		return err
	}
	if teaching {
		return util.ConflictError("user_teaching_course", courseID, "already teaching this course")
	}
	return s.CourseRepo.CreateTeaching(&model.UserTeachingCourse{UserID: userID, CourseID: courseID})
}

func (s *ContentService) ListStudents(courseID uint) ([]model.UserStudyingCourse, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", courseID)
		}
		return nil, err
	}
	return s.CourseRepo.ListStudents(courseID)
}

func (s *ContentService) ListTeachers(courseID uint) ([]model.UserTeachingCourse, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course", courseID)
		}
		return nil, err
	}
	return s.CourseRepo.ListTeachers(courseID)
}
