package services

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"elearn-backend/config"
	"elearn-backend/models"
)

func TestBuildUserCourseMatrix_AggregatesAcrossEventKinds(t *testing.T) {
	courseIDs := []uint{1, 2}
	rating := 5

	enrollments := []models.Enrollment{
		{UserID: 10, CourseID: 1},
	}
	interactions := []models.CourseInteraction{
		{UserID: 10, CourseID: 1, Type: models.InteractionViewed},
		{UserID: 10, CourseID: 1, Type: models.InteractionRated, Rating: &rating},
		{UserID: 10, CourseID: 1, Type: models.InteractionCompleted},
	}
	progress := []models.LearningProgress{
		{UserID: 10, CourseID: 1, Progress: 50},
	}

	userIDs, matrix := BuildUserCourseMatrix(courseIDs, enrollments, interactions, progress)

	if len(userIDs) != 1 || userIDs[0] != 10 {
		t.Fatalf("userIDs = %v, expected [10]", userIDs)
	}

	// 1.0 (enrolled) + 0.5 (viewed) + 2.0 (rated 5/5) + 2.0 (completed) + 0.5 (50% progress)
	expected := 6.0
	if math.Abs(matrix[0][0]-expected) > 1e-9 {
		t.Errorf("score = %v, expected %v", matrix[0][0], expected)
	}
	if matrix[0][1] != 0 {
		t.Errorf("untouched course score = %v, expected 0", matrix[0][1])
	}
}

func TestBuildUserCourseMatrix_UsersSortedAndUnknownCoursesDropped(t *testing.T) {
	courseIDs := []uint{1}

	enrollments := []models.Enrollment{
		{UserID: 30, CourseID: 1},
		{UserID: 10, CourseID: 1},
		{UserID: 20, CourseID: 99}, // unknown course, dropped entirely
	}

	userIDs, matrix := BuildUserCourseMatrix(courseIDs, enrollments, nil, nil)

	if len(userIDs) != 2 || userIDs[0] != 10 || userIDs[1] != 30 {
		t.Fatalf("userIDs = %v, expected [10 30]", userIDs)
	}
	if len(matrix) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(matrix))
	}
}

func TestBuildUserCourseMatrix_Empty(t *testing.T) {
	userIDs, matrix := BuildUserCourseMatrix([]uint{1, 2}, nil, nil, nil)
	if len(userIDs) != 0 || len(matrix) != 0 {
		t.Errorf("expected empty matrix, got %v users and %v rows", len(userIDs), len(matrix))
	}
}

func TestBuildCourseSimilarity_Degenerate(t *testing.T) {
	if sim := BuildCourseSimilarity(nil, 1000); len(sim) != 0 {
		t.Errorf("zero courses should yield empty matrix, got %d rows", len(sim))
	}

	sim := BuildCourseSimilarity([]models.Course{
		{ID: 1, Title: "Algebra Basics", Subject: "Math", Level: models.LevelBeginner, DifficultyScore: 1.0},
	}, 1000)
	if len(sim) != 1 || len(sim[0]) != 1 {
		t.Fatalf("expected 1x1 matrix, got %dx%d", len(sim), len(sim[0]))
	}
	if sim[0][0] != 1.0 {
		t.Errorf("single-course self similarity = %v, expected 1.0", sim[0][0])
	}
}

func TestBuildCourseSimilarity_Structure(t *testing.T) {
	courses := []models.Course{
		{ID: 1, Title: "Algebra Basics", Subject: "Math", Level: models.LevelBeginner, DifficultyScore: 1.0, Description: "equations and algebra"},
		{ID: 2, Title: "Advanced Algebra", Subject: "Math", Level: models.LevelAdvanced, DifficultyScore: 3.0, Description: "algebra deep dive"},
		{ID: 3, Title: "Watercolor Painting", Subject: "Art", Level: models.LevelBeginner, DifficultyScore: 1.0, Description: "painting with watercolors"},
	}

	sim := BuildCourseSimilarity(courses, 1000)

	for i := range sim {
		if sim[i][i] != 1.0 {
			t.Errorf("diagonal[%d] = %v, expected 1.0", i, sim[i][i])
		}
		for j := range sim {
			if math.Abs(sim[i][j]-sim[j][i]) > 1e-9 {
				t.Errorf("matrix not symmetric at (%d,%d)", i, j)
			}
		}
	}

	// The two math courses share subject and vocabulary
	if sim[0][1] <= sim[0][2] {
		t.Errorf("expected math courses more similar (%v) than math vs art (%v)", sim[0][1], sim[0][2])
	}
}

func TestSnapshotSaveLoadRoundTrip(t *testing.T) {
	cfg := &config.Config{TFIDFMaxFeatures: 1000, MaxCatalogCourses: 5000}
	svc := &SnapshotService{cfg: cfg}

	courses := []models.Course{
		{ID: 1, Title: "Algebra Basics", Subject: "Math", Level: models.LevelBeginner, DifficultyScore: 1.0},
		{ID: 2, Title: "Advanced Algebra", Subject: "Math", Level: models.LevelAdvanced, DifficultyScore: 3.0},
	}
	enrollments := []models.Enrollment{{UserID: 10, CourseID: 1}}
	progress := []models.LearningProgress{{UserID: 10, CourseID: 2, Progress: 33}}

	snap := BuildSnapshot(courses, enrollments, nil, progress, 1000)
	snap.Version = 7
	snap.BuiltAt = time.Now()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := svc.Save(snap, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Version != 7 {
		t.Errorf("version = %d, expected 7", loaded.Version)
	}
	if len(loaded.UserIDs) != 1 || loaded.UserIDs[0] != 10 {
		t.Errorf("UserIDs = %v, expected [10]", loaded.UserIDs)
	}

	// Scores must round-trip exactly, including the 0.33 progress fraction
	row, ok := loaded.UserRow(10)
	if !ok {
		t.Fatal("loaded snapshot lost the user row index")
	}
	origRow, _ := snap.UserRow(10)
	for i := range origRow {
		if row[i] != origRow[i] {
			t.Errorf("score[%d] = %v after round trip, expected %v", i, row[i], origRow[i])
		}
	}
	for i := range snap.CourseSim {
		for j := range snap.CourseSim[i] {
			if loaded.CourseSim[i][j] != snap.CourseSim[i][j] {
				t.Errorf("similarity[%d][%d] changed across round trip", i, j)
			}
		}
	}
}
