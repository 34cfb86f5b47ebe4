package service

import (
	"testing"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

func TestAttachTaskOnePerStep(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)
	step := seedStep(t, db, 10, nil)

	def, err := svc.AttachTask(step.ID, TaskAttachRequest{
		Kind:          model.TaskKindText,
		AnswerType:    model.AnswerTypeText,
		Criterion:     model.CriterionExact,
		CorrectAnswer: "42",
	})
	if err != nil {
		t.Fatalf("attach text task: %v", err)
	}
	if def.Kind != model.TaskKindText || def.Text == nil {
		t.Fatalf("bad definition: %+v", def)
	}

	// 同一步骤不能再挂第二个变体，哪怕是别的类型
	_, err = svc.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindTest})
	if !util.IsKind(err, util.KindConflict) {
		t.Fatalf("second variant: got %v, want conflict", err)
	}

	got, err := svc.DefinitionForStep(step.ID)
	if err != nil || got.Kind != model.TaskKindText {
		t.Fatalf("definition lookup: err=%v def=%+v", err, got)
	}

	if _, err := svc.AttachTask(9999, TaskAttachRequest{Kind: model.TaskKindText, CorrectAnswer: "x"}); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("attach to missing step: got %v, want not_found", err)
	}
}

func TestAttachTaskValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	step := seedStep(t, db, 10, nil)
	if _, err := svc.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindText}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("text task without answer: got %v, want validation", err)
	}
	if _, err := svc.AttachTask(step.ID, TaskAttachRequest{
		Kind:          model.TaskKindText,
		Criterion:     model.CriterionPattern,
		CorrectAnswer: "(",
	}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("broken pattern: got %v, want validation", err)
	}
	if _, err := svc.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindOpenEnded, NumReviews: 0}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("open ended without reviews: got %v, want validation", err)
	}
	if _, err := svc.AttachTask(step.ID, TaskAttachRequest{Kind: "bogus"}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("unknown kind: got %v, want validation", err)
	}
}

func TestTestOptionInvariants(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	step := seedStep(t, db, 10, nil)
	def, err := svc.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindTest, MultipleChoice: false})
	if err != nil {
		t.Fatalf("attach test task: %v", err)
	}
	taskID := def.Test.ID

	// 单选必须恰好一个正确项
	_, err = svc.ReplaceTestOptions(taskID, []TestOptionRequest{
		{Content: "a", IsCorrect: true},
		{Content: "b", IsCorrect: true},
	})
	if !util.IsKind(err, util.KindValidation) {
		t.Fatalf("two correct on single choice: got %v, want validation", err)
	}

	options, err := svc.ReplaceTestOptions(taskID, []TestOptionRequest{
		{Content: "a", IsCorrect: true},
		{Content: "b"},
	})
	if err != nil || len(options) != 2 {
		t.Fatalf("replace options: err=%v len=%d", err, len(options))
	}

	// 追加第二个正确项被拒
	if _, err := svc.AddTestOption(taskID, TestOptionRequest{Content: "c", IsCorrect: true}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("second correct via add: got %v, want validation", err)
	}
	added, err := svc.AddTestOption(taskID, TestOptionRequest{Content: "c"})
	if err != nil {
		t.Fatalf("add wrong option: %v", err)
	}

	// 换正确项是原子换
	if err := svc.SetCorrectTestOption(taskID, added.ID); err != nil {
		t.Fatalf("set correct: %v", err)
	}
	all, _ := svc.TestOptions(taskID)
	correct := 0
	for _, opt := range all {
		if opt.IsCorrect {
			correct++
			if opt.ID != added.ID {
				t.Fatalf("wrong option marked correct: %+v", opt)
			}
		}
	}
	if correct != 1 {
		t.Fatalf("correct count after swap: got %d, want 1", correct)
	}

	// 再次整组替换，旧选项不残留
	options, err = svc.ReplaceTestOptions(taskID, []TestOptionRequest{
		{Content: "x", IsCorrect: true},
		{Content: "y"},
	})
	if err != nil || len(options) != 2 {
		t.Fatalf("replace options again: err=%v len=%d", err, len(options))
	}
	all, _ = svc.TestOptions(taskID)
	if len(all) != 2 {
		t.Fatalf("options after second replace: got %d, want 2", len(all))
	}
}

func TestSortingOptionPermutation(t *testing.T) {
	db := newTestDB(t)
	svc := newTaskService(db)

	step := seedStep(t, db, 10, nil)
	def, err := svc.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindSorting, PartialScore: true})
	if err != nil {
		t.Fatalf("attach sorting task: %v", err)
	}
	taskID := def.Sorting.ID

	// 位置必须构成 1..N 连续排列
	_, err = svc.ReplaceSortingOptions(taskID, []SortingOptionRequest{
		{Content: "a", CorrectPosition: 1},
		{Content: "b", CorrectPosition: 3},
	})
	if !util.IsKind(err, util.KindValidation) {
		t.Fatalf("gap in positions: got %v, want validation", err)
	}
	_, err = svc.ReplaceSortingOptions(taskID, []SortingOptionRequest{
		{Content: "a", CorrectPosition: 1},
		{Content: "b", CorrectPosition: 1},
	})
	if !util.IsKind(err, util.KindValidation) {
		t.Fatalf("duplicate position: got %v, want validation", err)
	}

	options, err := svc.ReplaceSortingOptions(taskID, []SortingOptionRequest{
		{Content: "b", CorrectPosition: 2},
		{Content: "a", CorrectPosition: 1},
		{Content: "c", CorrectPosition: 3},
	})
	if err != nil || len(options) != 3 {
		t.Fatalf("replace sorting options: err=%v len=%d", err, len(options))
	}

	// 整组替换可以重复执行，旧行不能占着 (task_id, correct_position) 索引
	options, err = svc.ReplaceSortingOptions(taskID, []SortingOptionRequest{
		{Content: "x", CorrectPosition: 1},
		{Content: "y", CorrectPosition: 2},
	})
	if err != nil || len(options) != 2 {
		t.Fatalf("replace sorting options again: err=%v len=%d", err, len(options))
	}
	remaining, err := svc.SortingOptions(taskID)
	if err != nil || len(remaining) != 2 {
		t.Fatalf("sorting options after second replace: err=%v len=%d", err, len(remaining))
	}
}
