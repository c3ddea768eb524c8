package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"elearn-backend/config"
	"elearn-backend/database"
	"elearn-backend/models"
	"elearn-backend/utils"

	"gorm.io/gorm"
)

// FallbackReason tags why the fallback selector answered a request.
// Every shortfall path funnels through the same selector; the reason only
// drives the status message.
type FallbackReason int

const (
	ReasonNone FallbackReason = iota
	ReasonNoInteractions
	ReasonNoCourseScores
	ReasonFilteredOut
)

// Message returns the human-readable status for a fallback reason
func (r FallbackReason) Message(userID uint) string {
	switch r {
	case ReasonNoInteractions:
		return fmt.Sprintf("User %d has no interactions. Using default recommendations.", userID)
	case ReasonNoCourseScores:
		return fmt.Sprintf("User %d has no course interactions. Using default recommendations.", userID)
	case ReasonFilteredOut:
		return "No recommendations available after applying filters and excluding enrolled courses."
	default:
		return ""
	}
}

// RecommendationService serves hybrid course recommendations against an
// immutable snapshot. Requests read the snapshot under a read lock and may
// run fully in parallel; rebuilds swap the snapshot pointer atomically with
// at most one extraction in flight.
//
// Per-request cost is O(U*C) for user similarity plus O(P*C) for content
// scores; the rebuild-time course similarity is O(C^2). Fine at this scale,
// a production-sized catalog would need an ANN index instead.
type RecommendationService struct {
	db              *gorm.DB
	cfg             *config.Config
	snapshotService *SnapshotService

	mu       sync.RWMutex // guards snapshot
	snapshot *Snapshot

	rebuildMu sync.Mutex // at most one extraction in flight; guards version
	version   int
}

// NewRecommendationService creates a new recommendation service instance.
// A previously persisted snapshot is loaded when configured and present.
func NewRecommendationService(cfg *config.Config, snapshotService *SnapshotService) *RecommendationService {
	s := &RecommendationService{
		db:              database.GetDB(),
		cfg:             cfg,
		snapshotService: snapshotService,
	}

	if cfg.SnapshotPath != "" {
		if snap, err := snapshotService.Load(cfg.SnapshotPath); err == nil {
			s.snapshot = snap
			s.version = snap.Version
		} else {
			log.Printf("No usable persisted snapshot: %v", err)
		}
	}
	return s
}

// CurrentSnapshot returns the active snapshot, or nil before the first build
func (s *RecommendationService) CurrentSnapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *RecommendationService) publishSnapshot(snap *Snapshot) {
	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
}

// RebuildSnapshot triggers a full re-extraction. Idempotent and safe to
// call repeatedly: when an extraction is already running the call is a
// no-op, so a half-written snapshot can never be published. The bool
// reports whether this call performed the rebuild.
func (s *RecommendationService) RebuildSnapshot() (bool, error) {
	if !s.rebuildMu.TryLock() {
		log.Println("Snapshot rebuild already in progress, skipping")
		return false, nil
	}
	defer s.rebuildMu.Unlock()
	return true, s.buildAndPublish()
}

// buildAndPublish must be called with rebuildMu held
func (s *RecommendationService) buildAndPublish() error {
	snap, err := s.snapshotService.Build(s.version + 1)
	if err != nil {
		return fmt.Errorf("snapshot rebuild failed: %w", err)
	}
	s.version = snap.Version
	s.publishSnapshot(snap)

	if s.cfg.SnapshotPath != "" {
		if err := s.snapshotService.Save(snap, s.cfg.SnapshotPath); err != nil {
			log.Printf("Failed to persist snapshot: %v", err)
		}
	}
	return nil
}

// ensureSnapshot returns the active snapshot, building the very first one
// when none exists yet. Only that first build blocks requests.
func (s *RecommendationService) ensureSnapshot() (*Snapshot, error) {
	if snap := s.CurrentSnapshot(); snap != nil {
		return snap, nil
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()
	if snap := s.CurrentSnapshot(); snap != nil {
		return snap, nil
	}
	if err := s.buildAndPublish(); err != nil {
		return nil, err
	}
	return s.CurrentSnapshot(), nil
}

// Recommend returns up to topN course ids for a user, best first, plus a
// status message when the fallback selector answered. Cold-start and
// empty-result cases degrade to the fallback rather than erroring; only a
// storage failure comes back as an error.
func (s *RecommendationService) Recommend(userID uint, topN int, subject, level string) ([]uint, string, error) {
	topN = s.ClampTopN(topN)

	snap, err := s.ensureSnapshot()
	if err != nil {
		return nil, "", err
	}

	enrolled, err := s.enrolledCourses(userID)
	if err != nil {
		return nil, "", err
	}

	ids, reason := ScoreCourses(snap, userID, topN, subject, level, enrolled)
	if reason == ReasonNone {
		return ids, "", nil
	}

	fallback := FallbackExcludingEnrolled(snap.Courses, subject, level, s.cfg.FallbackLevel, topN, enrolled)
	return fallback, reason.Message(userID), nil
}

// ClampTopN normalizes a requested list size: values below 1 take the
// configured default, values above the cap are truncated to it.
func (s *RecommendationService) ClampTopN(topN int) int {
	if topN < 1 {
		return s.cfg.DefaultTopN
	}
	if topN > s.cfg.MaxRecommendations {
		return s.cfg.MaxRecommendations
	}
	return topN
}

// FallbackExcludingEnrolled runs the fallback selector and drops courses the
// user is already enrolled in. The no-enrolled-course guarantee holds on
// every path, fallback included, so the selector over-fetches before
// truncating to topN.
func FallbackExcludingEnrolled(courses []models.Course, subject, level, defaultLevel string, topN int, enrolled map[uint]struct{}) []uint {
	fallback := FallbackCourses(courses, subject, level, defaultLevel, topN+len(enrolled))
	result := make([]uint, 0, topN)
	for _, id := range fallback {
		if _, isEnrolled := enrolled[id]; isEnrolled {
			continue
		}
		result = append(result, id)
		if len(result) == topN {
			break
		}
	}
	return result
}

// enrolledCourses returns the set of course ids the user is enrolled in.
// Enrollment is read live rather than from the snapshot so a brand-new
// enrollment is excluded immediately.
func (s *RecommendationService) enrolledCourses(userID uint) (map[uint]struct{}, error) {
	var enrollments []models.Enrollment
	if err := s.db.Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return nil, fmt.Errorf("failed to load enrollments: %w", err)
	}
	enrolled := make(map[uint]struct{}, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.CourseID] = struct{}{}
	}
	return enrolled, nil
}

// ScoreCourses runs the hybrid scoring pipeline against a snapshot.
// Returns the ranked course ids, or a non-zero reason when the caller
// should fall back to default recommendations.
func ScoreCourses(
	snap *Snapshot,
	userID uint,
	topN int,
	subject, level string,
	enrolled map[uint]struct{},
) ([]uint, FallbackReason) {
	userRow, ok := snap.UserRow(userID)
	if !ok {
		return nil, ReasonNoInteractions
	}
	targetIdx, _ := snap.UserIndex(userID)
	numCourses := len(snap.CourseIDs)

	// Collaborative filtering: similarity-weighted sum of other users' scores
	sims := utils.CosineAgainstRows(userRow, snap.UserCourse)
	similarUsers := utils.SimilarUsers(snap.UserIDs, sims, targetIdx)

	collab := make([]float64, numCourses)
	for _, su := range similarUsers {
		idx, _ := snap.UserIndex(su.UserID)
		otherRow := snap.UserCourse[idx]
		for c := 0; c < numCourses; c++ {
			collab[c] += su.Similarity * otherRow[c]
		}
	}
	utils.NormalizeByMax(collab)

	// Content-based filtering over the user's positively-scored courses
	positive := make([]int, 0, numCourses)
	for c, score := range userRow {
		if score > 0 {
			positive = append(positive, c)
		}
	}
	if len(positive) == 0 {
		return nil, ReasonNoCourseScores
	}

	content := make([]float64, numCourses)
	for _, c := range positive {
		simRow := snap.CourseSim[c]
		for j := 0; j < numCourses; j++ {
			content[j] += simRow[j]
		}
	}
	utils.NormalizeByMax(content)

	hybrid := utils.CombineHybrid(collab, content)

	// Exclude enrolled courses and courses failing an explicit filter
	for j, course := range snap.Courses {
		if _, isEnrolled := enrolled[course.ID]; isEnrolled {
			hybrid[j] = utils.ExcludedScore
			continue
		}
		if subject != "" && course.Subject != subject {
			hybrid[j] = utils.ExcludedScore
			continue
		}
		if level != "" && course.Level != level {
			hybrid[j] = utils.ExcludedScore
		}
	}

	ids := utils.TopPositive(snap.CourseIDs, hybrid, topN)
	if len(ids) == 0 {
		return nil, ReasonFilteredOut
	}
	return ids, ReasonNone
}

// FallbackCourses is the rule-based selector used on every shortfall path:
// filter the catalog by subject and level (defaulting the level for
// cold-start users), order by ascending course id, take the first topN.
// Never errors; no match yields an empty list.
func FallbackCourses(courses []models.Course, subject, level, defaultLevel string, topN int) []uint {
	if level == "" {
		level = defaultLevel
	}

	ids := make([]uint, 0, topN)
	for _, c := range courses {
		if subject != "" && c.Subject != subject {
			continue
		}
		if level != "" && c.Level != level {
			continue
		}
		ids = append(ids, c.ID)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if len(ids) > topN {
		ids = ids[:topN]
	}
	return ids
}

// =============================================================================
// Event Recording
// =============================================================================

// RecordEnrollment enrolls a user in a course. The new enrollment affects
// exclusion immediately; its score contribution lands on the next rebuild.
func (s *RecommendationService) RecordEnrollment(userID, courseID uint) error {
	if err := s.courseExists(courseID); err != nil {
		return err
	}

	var count int64
	s.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("user %d is already enrolled in course %d", userID, courseID)
	}

	enrollment := models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return fmt.Errorf("failed to record enrollment: %w", err)
	}

	log.Printf("Recorded enrollment of user %d in course %d", userID, courseID)
	return nil
}

// RecordInteraction records a viewed/rated/completed event
func (s *RecommendationService) RecordInteraction(userID, courseID uint, interactionType string, rating *int) error {
	validTypes := map[string]bool{
		models.InteractionViewed:    true,
		models.InteractionRated:     true,
		models.InteractionCompleted: true,
	}
	if !validTypes[interactionType] {
		return fmt.Errorf("invalid interaction type: %s", interactionType)
	}
	if interactionType == models.InteractionRated && rating == nil {
		return fmt.Errorf("rating is required for rated interactions")
	}
	if err := s.courseExists(courseID); err != nil {
		return err
	}

	interaction := models.CourseInteraction{
		UserID:    userID,
		CourseID:  courseID,
		Type:      interactionType,
		Rating:    rating,
		Timestamp: time.Now(),
	}
	if err := s.db.Create(&interaction).Error; err != nil {
		return fmt.Errorf("failed to record interaction: %w", err)
	}

	log.Printf("Recorded %s interaction for course %d by user %d", interactionType, courseID, userID)
	return nil
}

// RecordProgress upserts learning progress for a (user, course) pair
func (s *RecommendationService) RecordProgress(userID, courseID uint, percent float64) error {
	if percent < 0 || percent > 100 {
		return fmt.Errorf("progress must be between 0 and 100, got %v", percent)
	}
	if err := s.courseExists(courseID); err != nil {
		return err
	}

	progress := models.LearningProgress{
		UserID:   userID,
		CourseID: courseID,
	}
	err := s.db.Where(models.LearningProgress{UserID: userID, CourseID: courseID}).
		Assign(map[string]interface{}{"progress": percent, "last_accessed": time.Now()}).
		FirstOrCreate(&progress).Error
	if err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}

	log.Printf("Recorded %.1f%% progress for course %d by user %d", percent, courseID, userID)
	return nil
}

func (s *RecommendationService) courseExists(courseID uint) error {
	var count int64
	if err := s.db.Model(&models.Course{}).Where("id = ?", courseID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up course: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("course %d not found", courseID)
	}
	return nil
}

// =============================================================================
// Stats
// =============================================================================

// GetStats returns snapshot dimensions and event-table counts
func (s *RecommendationService) GetStats() (map[string]interface{}, error) {
	var enrollmentCount, interactionCount, progressCount int64
	s.db.Model(&models.Enrollment{}).Count(&enrollmentCount)
	s.db.Model(&models.CourseInteraction{}).Count(&interactionCount)
	s.db.Model(&models.LearningProgress{}).Count(&progressCount)

	stats := map[string]interface{}{
		"enrollments":  enrollmentCount,
		"interactions": interactionCount,
		"progress":     progressCount,
	}

	if snap := s.CurrentSnapshot(); snap != nil {
		stats["snapshot_version"] = snap.Version
		stats["snapshot_built_at"] = snap.BuiltAt.Format(time.RFC3339)
		stats["snapshot_users"] = len(snap.UserIDs)
		stats["snapshot_courses"] = len(snap.CourseIDs)
	} else {
		stats["snapshot_version"] = 0
	}

	return stats, nil
}
