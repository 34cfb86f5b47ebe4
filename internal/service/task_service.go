package service

import (
	"errors"
	"regexp"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

// TaskService 负责四张变体表共享 step 外键时 schema 表达不了的判别约束：
// 一个 step 恰好挂一个任务变体
type TaskService struct {
	TaskRepo *repository.TaskRepository
	StepRepo *repository.StepRepository
	DB       *gorm.DB
}

func NewTaskService(taskRepo *repository.TaskRepository, stepRepo *repository.StepRepository, db *gorm.DB) *TaskService {
	return &TaskService{TaskRepo: taskRepo, StepRepo: stepRepo, DB: db}
}

type TaskAttachRequest struct {
	Kind model.TaskKind `json:"kind" binding:"required"`

	// text
	AnswerType    int    `json:"answerType"`
	Criterion     int    `json:"criterion"`
	CorrectAnswer string `json:"correctAnswer"`

	// open ended
	ReviewType int `json:"reviewType"`
	NumReviews int `json:"numReviews"`

	// test / sorting
	MultipleChoice bool `json:"multipleChoice"`
	PartialScore   bool `json:"partialScore"`
}

func (s *TaskService) AttachTask(stepID uint, req TaskAttachRequest) (*model.TaskDefinition, error) {
	if _, err := s.StepRepo.FindByID(stepID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("step", stepID)
		}
		return nil, err
	}

	var def *model.TaskDefinition
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := s.TaskRepo.DefinitionForStep(tx, stepID)
		if err != nil {
			return err
		}
		if existing != nil {
			return util.ConflictError("step", stepID, "step already has a task variant ("+string(existing.Kind)+")")
		}

		switch req.Kind {
		case model.TaskKindText:
			if req.CorrectAnswer == "" {
				return util.ValidationError("text_task", 0, "correct_answer required")
			}
			if req.AnswerType != model.AnswerTypeText && req.AnswerType != model.AnswerTypeNumber {
				return util.ValidationError("text_task", 0, "unknown answer_type")
			}
			if req.Criterion != model.CriterionExact &&
				req.Criterion != model.CriterionCaseInsensitive &&
				req.Criterion != model.CriterionPattern {
				return util.ValidationError("text_task", 0, "unknown criterion")
			}
			if req.Criterion == model.CriterionPattern {
				if _, err := regexp.Compile(req.CorrectAnswer); err != nil {
					return util.ValidationError("text_task", 0, "correct_answer is not a valid pattern")
				}
			}
			task := &model.TextTask{
				AnswerType:    req.AnswerType,
				Criterion:     req.Criterion,
				CorrectAnswer: req.CorrectAnswer,
				StepID:        stepID,
			}
			if err := tx.Create(task).Error; err != nil {
				return err
			}
			def = &model.TaskDefinition{Kind: model.TaskKindText, Text: task}

		case model.TaskKindOpenEnded:
			if req.NumReviews < 1 {
				return util.ValidationError("open_ended_task", 0, "num_reviews must be >= 1")
			}
			task := &model.OpenEndedTask{
				ReviewType: req.ReviewType,
				NumReviews: req.NumReviews,
				StepID:     stepID,
			}
			if err := tx.Create(task).Error; err != nil {
				return err
			}
			def = &model.TaskDefinition{Kind: model.TaskKindOpenEnded, OpenEnded: task}

		case model.TaskKindTest:
			task := &model.TestTask{
				MultipleChoice: req.MultipleChoice,
				PartialScore:   req.PartialScore,
				StepID:         stepID,
			}
			if err := tx.Create(task).Error; err != nil {
				return err
			}
			def = &model.TaskDefinition{Kind: model.TaskKindTest, Test: task}

		case model.TaskKindSorting:
			task := &model.SortingTask{
				PartialScore: req.PartialScore,
				StepID:       stepID,
			}
			if err := tx.Create(task).Error; err != nil {
				return err
			}
			def = &model.TaskDefinition{Kind: model.TaskKindSorting, Sorting: task}

		default:
			return util.ValidationError("step", stepID, "unknown task kind")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

func (s *TaskService) DefinitionForStep(stepID uint) (*model.TaskDefinition, error) {
	def, err := s.TaskRepo.DefinitionForStep(nil, stepID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, util.NotFoundError("task", stepID)
	}
	return def, nil
}

type TestOptionRequest struct {
	Content   string `json:"content" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// ReplaceTestOptions 整组替换选项；单选任务必须恰好一个正确项
func (s *TaskService) ReplaceTestOptions(taskID uint, options []TestOptionRequest) ([]model.TestOption, error) {
	task, err := s.TaskRepo.FindTestTask(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("test_task", taskID)
		}
		return nil, err
	}
	if len(options) == 0 {
		return nil, util.ValidationError("test_task", taskID, "at least one option required")
	}

	correctCount := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correctCount++
		}
	}
	if !task.MultipleChoice && correctCount != 1 {
		return nil, util.ValidationError("test_task", taskID, "single-choice task must have exactly one correct option")
	}
	if correctCount == 0 {
		return nil, util.ValidationError("test_task", taskID, "at least one correct option required")
	}

	var created []model.TestOption
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("task_id = ?", taskID).Delete(&model.TestOption{}).Error; err != nil {
			return err
		}
		for _, opt := range options {
			row := model.TestOption{Content: opt.Content, IsCorrect: opt.IsCorrect, TaskID: taskID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// AddTestOption 追加选项；单选任务不允许出现第二个正确项
func (s *TaskService) AddTestOption(taskID uint, req TestOptionRequest) (*model.TestOption, error) {
	task, err := s.TaskRepo.FindTestTask(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("test_task", taskID)
		}
		return nil, err
	}

	var option *model.TestOption
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if !task.MultipleChoice && req.IsCorrect {
			var correct int64
			if err := tx.Model(&model.TestOption{}).
				Where("task_id = ? AND is_correct = ?", taskID, true).Count(&correct).Error; err != nil {
				return err
			}
			if correct > 0 {
				return util.ValidationError("test_task", taskID, "single-choice task already has a correct option")
			}
		}
		option = &model.TestOption{Content: req.Content, IsCorrect: req.IsCorrect, TaskID: taskID}
		return tx.Create(option).Error
	})
	if err != nil {
		return nil, err
	}
	return option, nil
}

// SetCorrectTestOption 单选任务换正确项：同一事务内旧正确项落下、新项抬起
func (s *TaskService) SetCorrectTestOption(taskID, optionID uint) error {
	task, err := s.TaskRepo.FindTestTask(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("test_task", taskID)
		}
		return err
	}
	if task.MultipleChoice {
		return util.ValidationError("test_task", taskID, "use option replacement for multiple-choice tasks")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var option model.TestOption
		if err := tx.Where("id = ? AND task_id = ?", optionID, taskID).First(&option).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("test_option", optionID)
			}
			return err
		}
		if err := tx.Model(&model.TestOption{}).
			Where("task_id = ?", taskID).Update("is_correct", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.TestOption{}).
			Where("id = ?", optionID).Update("is_correct", true).Error
	})
}

func (s *TaskService) TestOptions(taskID uint) ([]model.TestOption, error) {
	return s.TaskRepo.TestOptions(taskID)
}

type SortingOptionRequest struct {
	Content         string `json:"content" binding:"required"`
	CorrectPosition int    `json:"correctPosition" binding:"required"`
}

// ReplaceSortingOptions 整组替换；correct_position 必须构成 1..N 连续排列
func (s *TaskService) ReplaceSortingOptions(taskID uint, options []SortingOptionRequest) ([]model.SortingOption, error) {
	if _, err := s.TaskRepo.FindSortingTask(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("sorting_task", taskID)
		}
		return nil, err
	}
	if len(options) == 0 {
		return nil, util.ValidationError("sorting_task", taskID, "at least one option required")
	}

	seen := make(map[int]bool, len(options))
	for _, opt := range options {
		if opt.CorrectPosition < 1 || opt.CorrectPosition > len(options) {
			return nil, util.ValidationError("sorting_task", taskID, "correct_position values must form a contiguous permutation starting at 1")
		}
		if seen[opt.CorrectPosition] {
			return nil, util.ValidationError("sorting_task", taskID, "duplicate correct_position")
		}
		seen[opt.CorrectPosition] = true
	}

	var created []model.SortingOption
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 物理删除旧选项，软删行会占着 (task_id, correct_position) 唯一索引
		if err := tx.Unscoped().Where("task_id = ?", taskID).Delete(&model.SortingOption{}).Error; err != nil {
			return err
		}
		for _, opt := range options {
			row := model.SortingOption{Content: opt.Content, CorrectPosition: opt.CorrectPosition, TaskID: taskID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *TaskService) SortingOptions(taskID uint) ([]model.SortingOption, error) {
	return s.TaskRepo.SortingOptions(taskID)
}
