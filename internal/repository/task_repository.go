package repository

import (
	"errors"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// DefinitionForStep 按 step 查四张变体表，拼出判别结果；一个都没有返回 nil
func (r *TaskRepository) DefinitionForStep(db *gorm.DB, stepID uint) (*model.TaskDefinition, error) {
	if db == nil {
		db = r.DB
	}

	var text model.TextTask
	err := db.Where("step_id = ?", stepID).First(&text).Error
	if err == nil {
		return &model.TaskDefinition{Kind: model.TaskKindText, Text: &text}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var open model.OpenEndedTask
	err = db.Where("step_id = ?", stepID).First(&open).Error
	if err == nil {
		return &model.TaskDefinition{Kind: model.TaskKindOpenEnded, OpenEnded: &open}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var test model.TestTask
	err = db.Where("step_id = ?", stepID).First(&test).Error
	if err == nil {
		return &model.TaskDefinition{Kind: model.TaskKindTest, Test: &test}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var sorting model.SortingTask
	err = db.Where("step_id = ?", stepID).First(&sorting).Error
	if err == nil {
		return &model.TaskDefinition{Kind: model.TaskKindSorting, Sorting: &sorting}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return nil, nil
}

func (r *TaskRepository) FindTestTask(id uint) (*model.TestTask, error) {
	var task model.TestTask
	if err := r.DB.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) FindSortingTask(id uint) (*model.SortingTask, error) {
	var task model.SortingTask
	if err := r.DB.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) TestOptions(taskID uint) ([]model.TestOption, error) {
	var options []model.TestOption
	err := r.DB.Where("task_id = ?", taskID).Order("id asc").Find(&options).Error
	return options, err
}

func (r *TaskRepository) SortingOptions(taskID uint) ([]model.SortingOption, error) {
	var options []model.SortingOption
	err := r.DB.Where("task_id = ?", taskID).Order("correct_position asc").Find(&options).Error
	return options, err
}
