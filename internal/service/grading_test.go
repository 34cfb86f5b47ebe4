package service

import (
	"testing"

	"studyhub_backend/internal/model"
)

func TestGradeTextExact(t *testing.T) {
	task := &model.TextTask{AnswerType: model.AnswerTypeText, Criterion: model.CriterionExact, CorrectAnswer: "Paris"}

	if got := GradeText(task, 10, "  Paris  "); got != 10 {
		t.Fatalf("trimmed exact match: got %v, want 10", got)
	}
	if got := GradeText(task, 10, "paris"); got != 0 {
		t.Fatalf("case mismatch on exact: got %v, want 0", got)
	}
}

func TestGradeTextCaseInsensitive(t *testing.T) {
	task := &model.TextTask{AnswerType: model.AnswerTypeText, Criterion: model.CriterionCaseInsensitive, CorrectAnswer: "Paris"}

	if got := GradeText(task, 10, "pArIs"); got != 10 {
		t.Fatalf("fold match: got %v, want 10", got)
	}
	if got := GradeText(task, 10, "London"); got != 0 {
		t.Fatalf("fold mismatch: got %v, want 0", got)
	}
}

func TestGradeTextPattern(t *testing.T) {
	task := &model.TextTask{AnswerType: model.AnswerTypeText, Criterion: model.CriterionPattern, CorrectAnswer: "pari.|london"}

	if got := GradeText(task, 5, "paris"); got != 5 {
		t.Fatalf("pattern match: got %v, want 5", got)
	}
	// 必须全串匹配，不是子串
	if got := GradeText(task, 5, "in paris"); got != 0 {
		t.Fatalf("partial pattern match must not score: got %v, want 0", got)
	}

	broken := &model.TextTask{AnswerType: model.AnswerTypeText, Criterion: model.CriterionPattern, CorrectAnswer: "("}
	if got := GradeText(broken, 5, "("); got != 0 {
		t.Fatalf("invalid pattern must score 0: got %v", got)
	}
}

func TestGradeTextNumber(t *testing.T) {
	task := &model.TextTask{AnswerType: model.AnswerTypeNumber, Criterion: model.CriterionExact, CorrectAnswer: "3.5"}

	if got := GradeText(task, 10, "3.50"); got != 10 {
		t.Fatalf("numeric equality ignores formatting: got %v, want 10", got)
	}
	if got := GradeText(task, 10, " 3.5 "); got != 10 {
		t.Fatalf("numeric answer with spaces: got %v, want 10", got)
	}
	if got := GradeText(task, 10, "3.51"); got != 0 {
		t.Fatalf("numeric mismatch: got %v, want 0", got)
	}
	if got := GradeText(task, 10, "abc"); got != 0 {
		t.Fatalf("unparseable answer: got %v, want 0", got)
	}
}

func TestGradeTestPartial(t *testing.T) {
	task := &model.TestTask{MultipleChoice: true, PartialScore: true}
	options := []model.TestOption{
		{BaseModel: model.BaseModel{ID: 1}, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 2}, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 3}, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 4}, IsCorrect: false},
	}

	// 2 对 1 错，3 个正确项：10 × (2-1)/3 = 3.33
	got := GradeTest(task, options, map[uint]bool{1: true, 2: true, 4: true}, 10)
	if got != 3.33 {
		t.Fatalf("partial test score: got %v, want 3.33", got)
	}

	// 错的比对的多不扣成负分
	got = GradeTest(task, options, map[uint]bool{4: true}, 10)
	if got != 0 {
		t.Fatalf("negative fraction must clamp to 0: got %v", got)
	}

	// 全对满分
	got = GradeTest(task, options, map[uint]bool{1: true, 2: true, 3: true}, 10)
	if got != 10 {
		t.Fatalf("all correct: got %v, want 10", got)
	}
}

func TestGradeTestExact(t *testing.T) {
	task := &model.TestTask{MultipleChoice: true, PartialScore: false}
	options := []model.TestOption{
		{BaseModel: model.BaseModel{ID: 1}, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 2}, IsCorrect: true},
		{BaseModel: model.BaseModel{ID: 3}, IsCorrect: false},
	}

	if got := GradeTest(task, options, map[uint]bool{1: true, 2: true}, 8); got != 8 {
		t.Fatalf("exact all-correct: got %v, want 8", got)
	}
	if got := GradeTest(task, options, map[uint]bool{1: true}, 8); got != 0 {
		t.Fatalf("missing a correct option: got %v, want 0", got)
	}
	if got := GradeTest(task, options, map[uint]bool{1: true, 2: true, 3: true}, 8); got != 0 {
		t.Fatalf("extra wrong option: got %v, want 0", got)
	}
}

func TestGradeSorting(t *testing.T) {
	options := []model.SortingOption{
		{BaseModel: model.BaseModel{ID: 1}, CorrectPosition: 1},
		{BaseModel: model.BaseModel{ID: 2}, CorrectPosition: 2},
		{BaseModel: model.BaseModel{ID: 3}, CorrectPosition: 3},
		{BaseModel: model.BaseModel{ID: 4}, CorrectPosition: 4},
	}

	partial := &model.SortingTask{PartialScore: true}
	// 4 个里摆对 3 个：10 × 3/4 = 7.5
	got := GradeSorting(partial, options, map[uint]int{1: 1, 2: 2, 3: 3, 4: 5}, 10)
	if got != 7.5 {
		t.Fatalf("partial sorting score: got %v, want 7.5", got)
	}

	exact := &model.SortingTask{PartialScore: false}
	if got := GradeSorting(exact, options, map[uint]int{1: 1, 2: 2, 3: 3, 4: 4}, 10); got != 10 {
		t.Fatalf("exact sorting all correct: got %v, want 10", got)
	}
	if got := GradeSorting(exact, options, map[uint]int{1: 2, 2: 1, 3: 3, 4: 4}, 10); got != 0 {
		t.Fatalf("exact sorting with swaps: got %v, want 0", got)
	}
}

func TestRoundScore(t *testing.T) {
	if got := RoundScore(10.0 / 3.0); got != 3.33 {
		t.Fatalf("got %v, want 3.33", got)
	}
	if got := RoundScore(24.0 / 3.0); got != 8.0 {
		t.Fatalf("got %v, want 8", got)
	}
	if got := RoundScore(2.0 / 3.0); got != 0.67 {
		t.Fatalf("got %v, want 0.67", got)
	}
}
