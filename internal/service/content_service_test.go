package service

import (
	"context"
	"testing"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

func TestMoveCategoryRejectsCycle(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	a, err := svc.CreateCategory("a", nil)
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.CreateCategory("b", &a.ID)
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	// a 是 b 的父节点，再把 a 挂到 b 下面就成环了
	if err := svc.MoveCategory(a.ID, &b.ID); !util.IsKind(err, util.KindStructural) {
		t.Fatalf("cycle move: got %v, want structural error", err)
	}
	if err := svc.MoveCategory(a.ID, &a.ID); !util.IsKind(err, util.KindStructural) {
		t.Fatalf("self-parent move: got %v, want structural error", err)
	}

	// 正常换父：b 提为根
	if err := svc.MoveCategory(b.ID, nil); err != nil {
		t.Fatalf("move b to root: %v", err)
	}
	roots, err := svc.ListChildCategories(nil)
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}
	if len(roots) != 2 {
		t.Fatalf("roots after move: got %d, want 2", len(roots))
	}
}

func TestResolvePath(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	root, _ := svc.CreateCategory("root", nil)
	mid, _ := svc.CreateCategory("mid", &root.ID)
	leaf, err := svc.CreateCategory("leaf", &mid.ID)
	if err != nil {
		t.Fatalf("create leaf: %v", err)
	}

	path, err := svc.ResolvePath(context.Background(), leaf.ID)
	if err != nil {
		t.Fatalf("resolve path: %v", err)
	}
	if len(path) != 3 {
		t.Fatalf("path length: got %d, want 3", len(path))
	}
	if path[0].ID != root.ID || path[1].ID != mid.ID || path[2].ID != leaf.ID {
		t.Fatalf("path order wrong: %v", path)
	}

	if _, err := svc.ResolvePath(context.Background(), 9999); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("missing category: got %v, want not_found", err)
	}
}

func TestDeleteCategoryDependency(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	parent, _ := svc.CreateCategory("parent", nil)
	child, _ := svc.CreateCategory("child", &parent.ID)

	if err := svc.DeleteCategory(parent.ID, false); !util.IsKind(err, util.KindDependency) {
		t.Fatalf("delete with children: got %v, want dependency error", err)
	}

	// cascade 连子树一起删
	if err := svc.DeleteCategory(parent.ID, true); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}
	if _, err := svc.ResolvePath(context.Background(), child.ID); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("child should be gone: got %v", err)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	if _, err := svc.CreateCourse(CourseCreateRequest{Title: "c", CategoryID: 42}); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("course with missing category: got %v, want not_found", err)
	}

	category, _ := svc.CreateCategory("cat", nil)
	course, err := svc.CreateCourse(CourseCreateRequest{Title: "c", CategoryID: category.ID})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}

	got, err := svc.GetCourse(course.ID)
	if err != nil || got.Title != "c" {
		t.Fatalf("get course: %v %+v", err, got)
	}
}

func TestUpdateContent(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	category, _ := svc.CreateCategory("old", nil)
	if _, err := svc.RenameCategory(category.ID, ""); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("empty rename: got %v, want validation", err)
	}
	renamed, err := svc.RenameCategory(category.ID, "new")
	if err != nil || renamed.Name != "new" {
		t.Fatalf("rename: err=%v name=%q", err, renamed.Name)
	}

	course, _ := svc.CreateCourse(CourseCreateRequest{Title: "c", CategoryID: category.ID})
	updated, err := svc.UpdateCourse(course.ID, CourseUpdateRequest{Title: "c2", Description: "d"})
	if err != nil || updated.Title != "c2" {
		t.Fatalf("update course: err=%v title=%q", err, updated.Title)
	}

	section, _ := svc.CreateSection(SectionCreateRequest{Title: "s", CourseID: course.ID})
	if _, err := svc.UpdateSection(section.ID, SectionUpdateRequest{Title: "s2"}); err != nil {
		t.Fatalf("update section: %v", err)
	}

	step, _ := svc.CreateStep(StepCreateRequest{Title: "st", MaxScore: 10, SectionID: section.ID})
	if _, err := svc.UpdateStep(step.ID, StepUpdateRequest{Title: "st", MaxScore: -5}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("negative max_score on update: got %v, want validation", err)
	}
	got, err := svc.UpdateStep(step.ID, StepUpdateRequest{Title: "st2", MaxScore: 20, MaxAttempts: intPtr(3)})
	if err != nil || got.MaxScore != 20 || got.MaxAttempts == nil || *got.MaxAttempts != 3 {
		t.Fatalf("update step: err=%v step=%+v", err, got)
	}

	if _, err := svc.UpdateCourse(9999, CourseUpdateRequest{Title: "x"}); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("update missing course: got %v, want not_found", err)
	}
}

func TestSectionAndStepOrdering(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	category, _ := svc.CreateCategory("cat", nil)
	course, _ := svc.CreateCourse(CourseCreateRequest{Title: "c", CategoryID: category.ID})

	s1, err := svc.CreateSection(SectionCreateRequest{Title: "one", CourseID: course.ID})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	s2, _ := svc.CreateSection(SectionCreateRequest{Title: "two", CourseID: course.ID})
	if s1.Position != 1 || s2.Position != 2 {
		t.Fatalf("section positions: got %d,%d want 1,2", s1.Position, s2.Position)
	}

	st1, err := svc.CreateStep(StepCreateRequest{Title: "a", MaxScore: 10, SectionID: s1.ID})
	if err != nil {
		t.Fatalf("create step: %v", err)
	}
	st2, _ := svc.CreateStep(StepCreateRequest{Title: "b", MaxScore: 10, SectionID: s1.ID})
	if st1.Position != 1 || st2.Position != 2 {
		t.Fatalf("step positions: got %d,%d want 1,2", st1.Position, st2.Position)
	}

	steps, err := svc.ListSteps(s1.ID)
	if err != nil || len(steps) != 2 || steps[0].ID != st1.ID {
		t.Fatalf("list steps: err=%v steps=%+v", err, steps)
	}

	if _, err := svc.CreateStep(StepCreateRequest{Title: "bad", MaxScore: -1, SectionID: s1.ID}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("negative max_score: got %v, want validation error", err)
	}
	if _, err := svc.CreateStep(StepCreateRequest{Title: "bad", MaxScore: 1, MaxAttempts: intPtr(0), SectionID: s1.ID}); !util.IsKind(err, util.KindValidation) {
		t.Fatalf("zero max_attempts: got %v, want validation error", err)
	}
}

func TestEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	category, _ := svc.CreateCategory("cat", nil)
	course, _ := svc.CreateCourse(CourseCreateRequest{Title: "c", CategoryID: category.ID})

	if err := svc.Enroll(7, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if err := svc.Enroll(7, course.ID); !util.IsKind(err, util.KindConflict) {
		t.Fatalf("duplicate enroll: got %v, want conflict", err)
	}

	// 同一用户可以同时学习和讲授
	if err := svc.AssignTeacher(7, course.ID); err != nil {
		t.Fatalf("assign teacher: %v", err)
	}
	if err := svc.AssignTeacher(7, course.ID); !util.IsKind(err, util.KindConflict) {
		t.Fatalf("duplicate teacher: got %v, want conflict", err)
	}

	students, err := svc.ListStudents(course.ID)
	if err != nil || len(students) != 1 {
		t.Fatalf("list students: err=%v len=%d", err, len(students))
	}

	if err := svc.Withdraw(7, course.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if err := svc.Withdraw(7, course.ID); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("withdraw twice: got %v, want not_found", err)
	}

	// 退课后重新报名是新的一行，不能被退掉的那行挡住
	if err := svc.Enroll(7, course.ID); err != nil {
		t.Fatalf("re-enroll after withdraw: %v", err)
	}
	students, err = svc.ListStudents(course.ID)
	if err != nil || len(students) != 1 {
		t.Fatalf("list students after re-enroll: err=%v len=%d", err, len(students))
	}

	if err := svc.Enroll(7, 9999); !util.IsKind(err, util.KindNotFound) {
		t.Fatalf("enroll missing course: got %v, want not_found", err)
	}
}

func TestDeleteCourseCascade(t *testing.T) {
	db := newTestDB(t)
	svc := newContentService(db)

	category, _ := svc.CreateCategory("cat", nil)
	course, _ := svc.CreateCourse(CourseCreateRequest{Title: "c", CategoryID: category.ID})
	section, _ := svc.CreateSection(SectionCreateRequest{Title: "s", CourseID: course.ID})
	svc.Enroll(3, course.ID)

	if err := svc.DeleteCourse(course.ID, false); !util.IsKind(err, util.KindDependency) {
		t.Fatalf("delete with sections: got %v, want dependency", err)
	}
	if err := svc.DeleteCourse(course.ID, true); err != nil {
		t.Fatalf("cascade delete: %v", err)
	}

	var sections []model.Section
	if err := db.Where("course_id = ?", course.ID).Find(&sections).Error; err != nil || len(sections) != 0 {
		t.Fatalf("sections should be gone: err=%v len=%d", err, len(sections))
	}
	_ = section
	var enrollments []model.UserStudyingCourse
	if err := db.Where("course_id = ?", course.ID).Find(&enrollments).Error; err != nil || len(enrollments) != 0 {
		t.Fatalf("enrollments should be gone: err=%v len=%d", err, len(enrollments))
	}
}
