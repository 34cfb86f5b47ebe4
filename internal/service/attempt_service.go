package service

import (
	"errors"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type AttemptService struct {
	AttemptRepo *repository.AttemptRepository
	TaskRepo    *repository.TaskRepository
	StepRepo    *repository.StepRepository
	DB          *gorm.DB
}

func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	taskRepo *repository.TaskRepository,
	stepRepo *repository.StepRepository,
	db *gorm.DB,
) *AttemptService {
	return &AttemptService{
		AttemptRepo: attemptRepo,
		TaskRepo:    taskRepo,
		StepRepo:    stepRepo,
		DB:          db,
	}
}

// AttemptPayload 按任务类型取用：文本/开放题用 Text，选择题用 OptionIDs，
// 排序题用 Placements（选项ID → 摆放位置）
type AttemptPayload struct {
	Text       *string      `json:"text,omitempty"`
	OptionIDs  []uint       `json:"optionIds,omitempty"`
	Placements map[uint]int `json:"placements,omitempty"`
}

// SubmitAttempt 次数检查、写入和判分在同一事务内；step 行锁把同一用户的
// 并发提交串行化，max_attempts 不会被挤爆
func (s *AttemptService) SubmitAttempt(userID, stepID uint, payload AttemptPayload) (*model.Attempt, error) {
	var attempt *model.Attempt
	var kind model.TaskKind

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var step model.Step
		if err := lockForUpdate(tx).First(&step, stepID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("step", stepID)
			}
			return err
		}

		def, err := s.TaskRepo.DefinitionForStep(tx, stepID)
		if err != nil {
			return err
		}
		if def == nil {
			return util.NotFoundError("task", stepID)
		}
		kind = def.Kind

		if step.MaxAttempts != nil {
			var count int64
			if err := tx.Model(&model.Attempt{}).
				Where("user_id = ? AND step_id = ?", userID, stepID).Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*step.MaxAttempts) {
				return util.LimitExceededError("step", stepID, "attempt limit reached")
			}
		}

		attempt = &model.Attempt{
			SubmissionTime: time.Now(),
			StepID:         stepID,
			UserID:         userID,
		}
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		switch def.Kind {
		case model.TaskKindText:
			if payload.Text == nil {
				return util.ValidationError("attempt", 0, "text payload required")
			}
			if err := tx.Create(&model.UserInput{Content: *payload.Text, AttemptID: attempt.ID}).Error; err != nil {
				return err
			}
			score := GradeText(def.Text, step.MaxScore, *payload.Text)
			attempt.Score = &score
			return tx.Save(attempt).Error

		case model.TaskKindOpenEnded:
			if payload.Text == nil {
				return util.ValidationError("attempt", 0, "text payload required")
			}
			// 分数留空，等评审集齐
			return tx.Create(&model.UserInput{Content: *payload.Text, AttemptID: attempt.ID}).Error

		case model.TaskKindTest:
			return s.submitTestTx(tx, attempt, def.Test, &step, payload)

		case model.TaskKindSorting:
			return s.submitSortingTx(tx, attempt, def.Sorting, &step, payload)
		}
		return util.ValidationError("step", stepID, "unknown task kind")
	})
	if err != nil {
		return nil, err
	}

	monitoring.AttemptsSubmitted.WithLabelValues(string(kind)).Inc()
	return attempt, nil
}

func (s *AttemptService) submitTestTx(tx *gorm.DB, attempt *model.Attempt, task *model.TestTask, step *model.Step, payload AttemptPayload) error {
	if len(payload.OptionIDs) == 0 {
		return util.ValidationError("attempt", 0, "at least one option must be selected")
	}
	if !task.MultipleChoice && len(payload.OptionIDs) > 1 {
		return util.ValidationError("attempt", 0, "task does not allow multiple selections")
	}

	var options []model.TestOption
	if err := tx.Where("task_id = ?", task.ID).Find(&options).Error; err != nil {
		return err
	}
	known := make(map[uint]bool, len(options))
	for _, opt := range options {
		known[opt.ID] = true
	}

	selected := make(map[uint]bool, len(payload.OptionIDs))
	for _, id := range payload.OptionIDs {
		if !known[id] {
			return util.ValidationError("test_option", id, "option does not belong to this task")
		}
		if selected[id] {
			return util.ValidationError("test_option", id, "option selected twice")
		}
		selected[id] = true
		if err := tx.Create(&model.AttemptTestOption{AttemptID: attempt.ID, OptionID: id}).Error; err != nil {
			return err
		}
	}

	score := GradeTest(task, options, selected, step.MaxScore)
	attempt.Score = &score
	return tx.Save(attempt).Error
}

func (s *AttemptService) submitSortingTx(tx *gorm.DB, attempt *model.Attempt, task *model.SortingTask, step *model.Step, payload AttemptPayload) error {
	var options []model.SortingOption
	if err := tx.Where("task_id = ?", task.ID).Find(&options).Error; err != nil {
		return err
	}
	if len(options) == 0 {
		return util.ValidationError("sorting_task", task.ID, "task has no options to arrange")
	}
	if len(payload.Placements) != len(options) {
		return util.ValidationError("attempt", 0, "placement must cover every option exactly once")
	}

	usedPositions := make(map[int]bool, len(options))
	for _, opt := range options {
		pos, ok := payload.Placements[opt.ID]
		if !ok {
			return util.ValidationError("sorting_option", opt.ID, "option missing from placement")
		}
		if pos < 1 || pos > len(options) {
			return util.ValidationError("sorting_option", opt.ID, "position out of range")
		}
		if usedPositions[pos] {
			return util.ValidationError("attempt", 0, "duplicate position in placement")
		}
		usedPositions[pos] = true
		if err := tx.Create(&model.AttemptSortingOption{
			Position:  pos,
			AttemptID: attempt.ID,
			OptionID:  opt.ID,
		}).Error; err != nil {
			return err
		}
	}

	score := GradeSorting(task, options, payload.Placements, step.MaxScore)
	attempt.Score = &score
	return tx.Save(attempt).Error
}

func (s *AttemptService) GetAttempt(id uint) (*model.Attempt, error) {
	attempt, err := s.AttemptRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("attempt", id)
		}
		return nil, err
	}
	return attempt, nil
}

// AttemptDetail 提交记录加上当时的作答内容，按任务类型只填一个分支
type AttemptDetail struct {
	Attempt    *model.Attempt `json:"attempt"`
	Kind       model.TaskKind `json:"kind"`
	Text       *string        `json:"text,omitempty"`
	OptionIDs  []uint         `json:"optionIds,omitempty"`
	Placements map[uint]int   `json:"placements,omitempty"`
}

func (s *AttemptService) GetAttemptDetail(id uint) (*AttemptDetail, error) {
	attempt, err := s.GetAttempt(id)
	if err != nil {
		return nil, err
	}
	def, err := s.TaskRepo.DefinitionForStep(nil, attempt.StepID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, util.NotFoundError("task", attempt.StepID)
	}

	detail := &AttemptDetail{Attempt: attempt, Kind: def.Kind}
	switch def.Kind {
	case model.TaskKindText, model.TaskKindOpenEnded:
		input, err := s.AttemptRepo.UserInput(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return detail, nil
			}
			return nil, err
		}
		detail.Text = &input.Content

	case model.TaskKindTest:
		rows, err := s.AttemptRepo.TestSelections(id)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			detail.OptionIDs = append(detail.OptionIDs, row.OptionID)
		}

	case model.TaskKindSorting:
		rows, err := s.AttemptRepo.SortingSelections(id)
		if err != nil {
			return nil, err
		}
		detail.Placements = make(map[uint]int, len(rows))
		for _, row := range rows {
			detail.Placements[row.OptionID] = row.Position
		}
	}
	return detail, nil
}

func (s *AttemptService) ListByUserStep(userID, stepID uint) ([]model.Attempt, error) {
	return s.AttemptRepo.ListByUserStep(userID, stepID)
}

func (s *AttemptService) ListByUser(userID uint, page, limit int) ([]model.Attempt, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.AttemptRepo.ListByUser(userID, page, limit)
}
