package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"studyhub_backend/internal/model"
)

// RoundScore 统一舍入：保留两位小数
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

func clampScore(score float64, maxScore int) float64 {
	if score < 0 {
		return 0
	}
	if m := float64(maxScore); score > m {
		return m
	}
	return score
}

// GradeText 按 answer_type/criterion 选出的比较策略判分，匹配得满分否则0分
func GradeText(task *model.TextTask, maxScore int, answer string) float64 {
	if textAnswerMatches(task, answer) {
		return RoundScore(clampScore(float64(maxScore), maxScore))
	}
	return 0
}

func textAnswerMatches(task *model.TextTask, answer string) bool {
	if task.AnswerType == model.AnswerTypeNumber {
		want, errWant := strconv.ParseFloat(strings.TrimSpace(task.CorrectAnswer), 64)
		got, errGot := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		return errWant == nil && errGot == nil && math.Abs(want-got) < 1e-9
	}

	switch task.Criterion {
	case model.CriterionCaseInsensitive:
		return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(task.CorrectAnswer))
	case model.CriterionPattern:
		re, err := regexp.Compile("^(?:" + task.CorrectAnswer + ")$")
		if err != nil {
			return false
		}
		return re.MatchString(strings.TrimSpace(answer))
	default:
		return strings.TrimSpace(answer) == strings.TrimSpace(task.CorrectAnswer)
	}
}

// GradeTest 选择题判分。partial_score 时得分 = max_score × max(0, (对-错)/正确项总数)
func GradeTest(task *model.TestTask, options []model.TestOption, selected map[uint]bool, maxScore int) float64 {
	correct, wrong, totalCorrect := 0, 0, 0
	for _, opt := range options {
		if opt.IsCorrect {
			totalCorrect++
		}
		if selected[opt.ID] {
			if opt.IsCorrect {
				correct++
			} else {
				wrong++
			}
		}
	}

	if task.PartialScore {
		if totalCorrect == 0 {
			return 0
		}
		frac := float64(correct-wrong) / float64(totalCorrect)
		if frac < 0 {
			frac = 0
		}
		return RoundScore(clampScore(float64(maxScore)*frac, maxScore))
	}

	// 全对且无多选才得分
	if wrong == 0 && correct == totalCorrect {
		return RoundScore(clampScore(float64(maxScore), maxScore))
	}
	return 0
}

// GradeSorting 排序题判分。partial_score 时按放对位置的比例给分
func GradeSorting(task *model.SortingTask, options []model.SortingOption, placements map[uint]int, maxScore int) float64 {
	matched := 0
	for _, opt := range options {
		if placements[opt.ID] == opt.CorrectPosition {
			matched++
		}
	}
	total := len(options)
	if total == 0 {
		return 0
	}

	if task.PartialScore {
		frac := float64(matched) / float64(total)
		return RoundScore(clampScore(float64(maxScore)*frac, maxScore))
	}

	if matched == total {
		return RoundScore(clampScore(float64(maxScore), maxScore))
	}
	return 0
}
