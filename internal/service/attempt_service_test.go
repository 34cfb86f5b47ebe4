package service

import (
	"testing"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

func TestSubmitTextAttempt(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, nil)
	if _, err := tasks.AttachTask(step.ID, TaskAttachRequest{
		Kind:          model.TaskKindText,
		AnswerType:    model.AnswerTypeText,
		Criterion:     model.CriterionCaseInsensitive,
		CorrectAnswer: "Paris",
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	a, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Text: strPtr("paris")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.Score == nil || *a.Score != 10 {
		t.Fatalf("text score: got %v, want 10", a.Score)
	}

	wrong, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Text: strPtr("London")})
	if err != nil {
		t.Fatalf("submit wrong: %v", err)
	}
	if wrong.Score == nil || *wrong.Score != 0 {
		t.Fatalf("wrong answer score: got %v, want 0", wrong.Score)
	}

	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("missing text payload: got %v, want validation", err)
	}
}

func TestSubmitOpenEndedAttempt(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, nil)
	if _, err := tasks.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindOpenEnded, NumReviews: 3}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	a, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Text: strPtr("my essay")})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	// 评审没集齐之前分数保持为空
	if a.Score != nil {
		t.Fatalf("open ended score must stay nil, got %v", *a.Score)
	}

	var input model.UserInput
	if err := db.Where("attempt_id = ?", a.ID).First(&input).Error; err != nil {
		t.Fatalf("user input row: %v", err)
	}
	if input.Content != "my essay" {
		t.Fatalf("input content: got %q", input.Content)
	}
}

func TestAttemptLimit(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, intPtr(2))
	if _, err := tasks.AttachTask(step.ID, TaskAttachRequest{
		Kind:          model.TaskKindText,
		CorrectAnswer: "x",
	}); err != nil {
		t.Fatalf("attach: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Text: strPtr("x")}); err != nil {
			t.Fatalf("submit %d: %v", i+1, err)
		}
	}
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Text: strPtr("x")}); !util.IsKind(err, util.KindLimitExceeded) {
		t.Fatalf("third submit: got %v, want limit_exceeded", err)
	}

	// 别的用户不受影响
	if _, err := attempts.SubmitAttempt(2, step.ID, AttemptPayload{Text: strPtr("x")}); err != nil {
		t.Fatalf("other user submit: %v", err)
	}

	mine, err := attempts.ListByUserStep(1, step.ID)
	if err != nil || len(mine) != 2 {
		t.Fatalf("list by user step: err=%v len=%d", err, len(mine))
	}
}

func TestSubmitTestAttempt(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, nil)
	def, err := tasks.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindTest, MultipleChoice: true, PartialScore: true})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	options, err := tasks.ReplaceTestOptions(def.Test.ID, []TestOptionRequest{
		{Content: "a", IsCorrect: true},
		{Content: "b", IsCorrect: true},
		{Content: "c", IsCorrect: true},
		{Content: "d"},
	})
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	// 2 对 1 错，3 个正确项：10 × (2-1)/3 = 3.33
	a, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{
		OptionIDs: []uint{options[0].ID, options[1].ID, options[3].ID},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.Score == nil || *a.Score != 3.33 {
		t.Fatalf("partial score: got %v, want 3.33", a.Score)
	}

	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("empty selection: got %v, want validation", err)
	}
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{OptionIDs: []uint{9999}}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("foreign option: got %v, want validation", err)
	}
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{
		OptionIDs: []uint{options[0].ID, options[0].ID},
	}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("duplicate option: got %v, want validation", err)
	}
}

func TestSubmitTestAttemptSingleChoice(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 5, nil)
	def, _ := tasks.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindTest, MultipleChoice: false})
	options, _ := tasks.ReplaceTestOptions(def.Test.ID, []TestOptionRequest{
		{Content: "right", IsCorrect: true},
		{Content: "wrong"},
	})

	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{
		OptionIDs: []uint{options[0].ID, options[1].ID},
	}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("multi selection on single choice: got %v, want validation", err)
	}

	a, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{OptionIDs: []uint{options[0].ID}})
	if err != nil || a.Score == nil || *a.Score != 5 {
		t.Fatalf("single choice correct: err=%v score=%v", err, a.Score)
	}
}

func TestSubmitSortingAttempt(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, nil)
	def, _ := tasks.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindSorting, PartialScore: true})
	options, err := tasks.ReplaceSortingOptions(def.Sorting.ID, []SortingOptionRequest{
		{Content: "a", CorrectPosition: 1},
		{Content: "b", CorrectPosition: 2},
		{Content: "c", CorrectPosition: 3},
		{Content: "d", CorrectPosition: 4},
	})
	if err != nil {
		t.Fatalf("options: %v", err)
	}

	// 后两项互换，摆对 2/4：10 × 2/4 = 5
	a, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Placements: map[uint]int{
		options[0].ID: 1,
		options[1].ID: 2,
		options[2].ID: 4,
		options[3].ID: 3,
	}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if a.Score == nil || *a.Score != 5 {
		t.Fatalf("partial sorting score: got %v, want 5", a.Score)
	}

	// 覆盖不完整被拒
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Placements: map[uint]int{
		options[0].ID: 1,
	}}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("incomplete placement: got %v, want validation", err)
	}
	// 位置重复被拒
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Placements: map[uint]int{
		options[0].ID: 1,
		options[1].ID: 1,
		options[2].ID: 3,
		options[3].ID: 4,
	}}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("duplicate placement: got %v, want validation", err)
	}
}

func TestSubmitSortingAttemptWithoutOptions(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	// 还没配选项的排序任务不可作答，空摆放不算满足覆盖
	step := seedStep(t, db, 10, nil)
	if _, err := tasks.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindSorting}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Placements: map[uint]int{}}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("submit against option-less task: got %v, want validation", err)
	}
}

func TestGetAttemptDetail(t *testing.T) {
	db := newTestDB(t)
	tasks := newTaskService(db)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, nil)
	def, _ := tasks.AttachTask(step.ID, TaskAttachRequest{Kind: model.TaskKindTest, MultipleChoice: true, PartialScore: true})
	options, _ := tasks.ReplaceTestOptions(def.Test.ID, []TestOptionRequest{
		{Content: "a", IsCorrect: true},
		{Content: "b"},
	})

	a, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{OptionIDs: []uint{options[0].ID}})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	detail, err := attempts.GetAttemptDetail(a.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Kind != model.TaskKindTest {
		t.Fatalf("detail kind: got %s", detail.Kind)
	}
	if len(detail.OptionIDs) != 1 || detail.OptionIDs[0] != options[0].ID {
		t.Fatalf("detail selections: %+v", detail.OptionIDs)
	}

	textStep := seedStep(t, db, 10, nil)
	tasks.AttachTask(textStep.ID, TaskAttachRequest{Kind: model.TaskKindText, CorrectAnswer: "x"})
	ta, _ := attempts.SubmitAttempt(1, textStep.ID, AttemptPayload{Text: strPtr("hello")})
	textDetail, err := attempts.GetAttemptDetail(ta.ID)
	if err != nil || textDetail.Text == nil || *textDetail.Text != "hello" {
		t.Fatalf("text detail: err=%v detail=%+v", err, textDetail)
	}

	if _, err := attempts.GetAttemptDetail(9999); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("missing attempt detail: got %v, want not_found", err)
	}
}

func TestSubmitAttemptWithoutTask(t *testing.T) {
	db := newTestDB(t)
	attempts := newAttemptService(db)

	step := seedStep(t, db, 10, nil)
	if _, err := attempts.SubmitAttempt(1, step.ID, AttemptPayload{Text: strPtr("x")}); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("step without task: got %v, want not_found", err)
	}
	if _, err := attempts.SubmitAttempt(1, 9999, AttemptPayload{Text: strPtr("x")}); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("missing step: got %v, want not_found", err)
	}
}
