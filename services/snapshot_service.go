package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"elearn-backend/config"
	"elearn-backend/database"
	"elearn-backend/models"
	"elearn-backend/utils"

	"gorm.io/gorm"
)

// ErrCatalogTooLarge is returned when the catalog exceeds the configured
// bound for pairwise similarity computation. The O(n^2) course similarity
// step is the scalability limit of this design; larger catalogs need an
// approximate-nearest-neighbor index instead.
var ErrCatalogTooLarge = errors.New("course catalog exceeds MAX_CATALOG_COURSES")

// Snapshot is an immutable set of matrices produced by one extraction run.
// Readers always see a complete snapshot: the service swaps the pointer
// atomically and never mutates a published snapshot.
type Snapshot struct {
	Version int       `json:"version"`
	BuiltAt time.Time `json:"built_at"`

	// UserIDs are the distinct users with at least one recorded event,
	// ascending. Row i of UserCourse belongs to UserIDs[i].
	UserIDs []uint `json:"user_ids"`

	// CourseIDs are all known course ids, ascending. Column j of UserCourse
	// and row/column j of CourseSim belong to CourseIDs[j].
	CourseIDs []uint `json:"course_ids"`

	// Courses is the catalog at extraction time, same order as CourseIDs
	Courses []models.Course `json:"courses"`

	// UserCourse holds aggregated interaction scores, missing entries are 0
	UserCourse [][]float64 `json:"user_course"`

	// CourseSim is the symmetric course-similarity matrix with diagonal 1
	CourseSim [][]float64 `json:"course_sim"`

	userIndex   map[uint]int
	courseIndex map[uint]int
}

// buildIndexes populates the id -> row/column lookup maps
func (s *Snapshot) buildIndexes() {
	s.userIndex = make(map[uint]int, len(s.UserIDs))
	for i, id := range s.UserIDs {
		s.userIndex[id] = i
	}
	s.courseIndex = make(map[uint]int, len(s.CourseIDs))
	for i, id := range s.CourseIDs {
		s.courseIndex[id] = i
	}
}

// UserRow returns the interaction-score row for a user, or false when the
// user has no recorded events
func (s *Snapshot) UserRow(userID uint) ([]float64, bool) {
	idx, ok := s.userIndex[userID]
	if !ok {
		return nil, false
	}
	return s.UserCourse[idx], true
}

// UserIndex returns the matrix row index for a user
func (s *Snapshot) UserIndex(userID uint) (int, bool) {
	idx, ok := s.userIndex[userID]
	return idx, ok
}

// CourseIndex returns the matrix column index for a course
func (s *Snapshot) CourseIndex(courseID uint) (int, bool) {
	idx, ok := s.courseIndex[courseID]
	return idx, ok
}

// SnapshotService performs batch feature extraction: it turns the raw
// enrollment/interaction/progress tables and the course catalog into the
// matrices the recommender scores against.
type SnapshotService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewSnapshotService creates a new snapshot service instance
func NewSnapshotService(cfg *config.Config) *SnapshotService {
	return &SnapshotService{
		db:  database.GetDB(),
		cfg: cfg,
	}
}

// Build runs a full extraction and returns a fresh snapshot. Any table
// read error is surfaced to the caller as a hard failure; missing optional
// fields never fail extraction.
func (s *SnapshotService) Build(version int) (*Snapshot, error) {
	var courses []models.Course
	if err := s.db.Order("id asc").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to load course catalog: %w", err)
	}
	if len(courses) > s.cfg.MaxCatalogCourses {
		return nil, fmt.Errorf("%w: %d courses, limit %d",
			ErrCatalogTooLarge, len(courses), s.cfg.MaxCatalogCourses)
	}

	var enrollments []models.Enrollment
	if err := s.db.Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	var interactions []models.CourseInteraction
	if err := s.db.Find(&interactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load interactions: %w", err)
	}
	var progress []models.LearningProgress
	if err := s.db.Find(&progress).Error; err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	snap := BuildSnapshot(courses, enrollments, interactions, progress, s.cfg.TFIDFMaxFeatures)
	snap.Version = version
	snap.BuiltAt = time.Now()

	log.Printf("Snapshot v%d built: %d users x %d courses",
		snap.Version, len(snap.UserIDs), len(snap.CourseIDs))
	return snap, nil
}

// BuildSnapshot assembles a snapshot from already-loaded tables
func BuildSnapshot(
	courses []models.Course,
	enrollments []models.Enrollment,
	interactions []models.CourseInteraction,
	progress []models.LearningProgress,
	tfidfMaxFeatures int,
) *Snapshot {
	courseIDs := make([]uint, len(courses))
	for i, c := range courses {
		courseIDs[i] = c.ID
	}

	userIDs, matrix := BuildUserCourseMatrix(courseIDs, enrollments, interactions, progress)

	snap := &Snapshot{
		UserIDs:    userIDs,
		CourseIDs:  courseIDs,
		Courses:    courses,
		UserCourse: matrix,
		CourseSim:  BuildCourseSimilarity(courses, tfidfMaxFeatures),
	}
	snap.buildIndexes()
	return snap
}

// BuildUserCourseMatrix aggregates every event into one score per
// (user, course) pair and pivots the result into a dense matrix. Events for
// the same pair are summed, never overwritten. Events referencing unknown
// courses are dropped.
func BuildUserCourseMatrix(
	courseIDs []uint,
	enrollments []models.Enrollment,
	interactions []models.CourseInteraction,
	progress []models.LearningProgress,
) ([]uint, [][]float64) {
	courseIndex := make(map[uint]int, len(courseIDs))
	for i, id := range courseIDs {
		courseIndex[id] = i
	}

	scores := make(map[uint]map[uint]float64)
	add := func(userID, courseID uint, score float64) {
		if _, known := courseIndex[courseID]; !known {
			return
		}
		if scores[userID] == nil {
			scores[userID] = make(map[uint]float64)
		}
		scores[userID][courseID] += score
	}

	for _, e := range enrollments {
		add(e.UserID, e.CourseID, models.WeightEnrollment)
	}
	for _, it := range interactions {
		add(it.UserID, it.CourseID, models.GetInteractionWeight(it.Type, it.Rating))
	}
	for _, p := range progress {
		add(p.UserID, p.CourseID, p.Progress/100.0)
	}

	userIDs := make([]uint, 0, len(scores))
	for id := range scores {
		userIDs = append(userIDs, id)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	matrix := make([][]float64, len(userIDs))
	for i, userID := range userIDs {
		row := make([]float64, len(courseIDs))
		for courseID, score := range scores[userID] {
			row[courseIndex[courseID]] = score
		}
		matrix[i] = row
	}
	return userIDs, matrix
}

// BuildCourseSimilarity computes pairwise cosine similarity over course
// feature vectors: TF-IDF of the combined text plus difficulty score and
// integer-encoded subject and level. The diagonal is always 1 (a course is
// fully similar to itself), including the single-course catalog case.
func BuildCourseSimilarity(courses []models.Course, tfidfMaxFeatures int) [][]float64 {
	if len(courses) == 0 {
		return [][]float64{}
	}

	docs := make([]string, len(courses))
	subjects := make([]string, len(courses))
	levels := make([]string, len(courses))
	for i, c := range courses {
		docs[i] = c.CombinedFeatures()
		subjects[i] = c.Subject
		levels[i] = c.Level
	}

	vectorizer := utils.NewTFIDFVectorizer(tfidfMaxFeatures)
	tfidf := vectorizer.FitTransform(docs)

	subjectCodes := utils.EncodeCategories(subjects)
	levelCodes := utils.EncodeCategories(levels)

	features := make([][]float64, len(courses))
	for i, c := range courses {
		vec := make([]float64, 0, len(tfidf[i])+3)
		vec = append(vec, tfidf[i]...)
		vec = append(vec,
			c.DifficultyScore,
			float64(subjectCodes[c.Subject]),
			float64(levelCodes[c.Level]),
		)
		features[i] = vec
	}

	sim := utils.PairwiseCosine(features)
	for i := range sim {
		sim[i][i] = 1.0
	}
	return sim
}

// Save persists a snapshot as JSON. encoding/json writes the shortest
// float64 representation that round-trips exactly, so scores survive the
// trip and ids stay integers.
func (s *SnapshotService) Save(snap *Snapshot, path string) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	log.Printf("Snapshot v%d saved to %s", snap.Version, path)
	return nil
}

// Load reads a persisted snapshot from disk
func (s *SnapshotService) Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot file: %w", err)
	}
	snap.buildIndexes()
	log.Printf("Snapshot v%d loaded from %s (%d users x %d courses)",
		snap.Version, path, len(snap.UserIDs), len(snap.CourseIDs))
	return &snap, nil
}
