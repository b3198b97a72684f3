package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/pkg/apperrors"
	"github.com/emirhan/coursedeck/internal/pkg/upstream"
)

// fakeUpstream is an in-memory upstream.Client. Errors set on a method make
// every call to it fail; call counters expose how often each was hit.
type fakeUpstream struct {
	seasons     []upstream.Season
	departments []upstream.Department
	// courses is keyed by "seasonID:departmentID".
	courses map[string][]upstream.Course

	seasonsErr     error
	departmentsErr error
	// coursesErr fails every department fetch; coursesErrFor fails one.
	coursesErr    error
	coursesErrFor map[string]error

	seasonCalls     int
	departmentCalls int
	courseCalls     int
}

func courseKey(seasonID, departmentID int64) string {
	return fmt.Sprintf("%d:%d", seasonID, departmentID)
}

func (f *fakeUpstream) FetchSeasons(ctx context.Context) ([]upstream.Season, error) {
	f.seasonCalls++
	if f.seasonsErr != nil {
		return nil, f.seasonsErr
	}
	return f.seasons, nil
}

func (f *fakeUpstream) FetchDepartments(ctx context.Context) ([]upstream.Department, error) {
	f.departmentCalls++
	if f.departmentsErr != nil {
		return nil, f.departmentsErr
	}
	return f.departments, nil
}

func (f *fakeUpstream) FetchCourses(ctx context.Context, seasonID, departmentID int64) ([]upstream.Course, error) {
	f.courseCalls++
	if f.coursesErr != nil {
		return nil, f.coursesErr
	}
	if err, ok := f.coursesErrFor[courseKey(seasonID, departmentID)]; ok {
		return nil, err
	}
	return f.courses[courseKey(seasonID, departmentID)], nil
}

// fakeSeasonStore keeps seasons in a map keyed by upstream id.
type fakeSeasonStore struct {
	seasons  map[int64]*models.Season
	lastSync *time.Time

	upsertErr error
	getAllErr error
	countErr  error
}

func newFakeSeasonStore() *fakeSeasonStore {
	return &fakeSeasonStore{seasons: make(map[int64]*models.Season)}
}

func (f *fakeSeasonStore) Upsert(ctx context.Context, season *models.Season) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	now := time.Now()
	season.LastSyncedAt = now
	f.lastSync = &now

	_, exists := f.seasons[season.ID]
	copied := *season
	f.seasons[season.ID] = &copied
	return !exists, nil
}

func (f *fakeSeasonStore) GetByID(ctx context.Context, id int64) (*models.Season, error) {
	season, ok := f.seasons[id]
	if !ok {
		return nil, apperrors.ErrSeasonNotFound
	}
	return season, nil
}

func (f *fakeSeasonStore) GetAll(ctx context.Context) ([]*models.Season, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	ids := make([]int64, 0, len(f.seasons))
	for id := range f.seasons {
		ids = append(ids, id)
	}
	// Newest first, matching the repository ordering.
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	result := make([]*models.Season, 0, len(ids))
	for _, id := range ids {
		result = append(result, f.seasons[id])
	}
	return result, nil
}

func (f *fakeSeasonStore) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.seasons)), nil
}

func (f *fakeSeasonStore) LatestSyncTime(ctx context.Context) (*time.Time, error) {
	return f.lastSync, nil
}

func (f *fakeSeasonStore) DeleteByID(ctx context.Context, id int64) error {
	if _, ok := f.seasons[id]; !ok {
		return apperrors.ErrSeasonNotFound
	}
	delete(f.seasons, id)
	return nil
}

// fakeDepartmentStore keeps departments in a map keyed by upstream id.
type fakeDepartmentStore struct {
	departments map[int64]*models.Department

	upsertErr error
	getAllErr error
	countErr  error
}

func newFakeDepartmentStore() *fakeDepartmentStore {
	return &fakeDepartmentStore{departments: make(map[int64]*models.Department)}
}

func (f *fakeDepartmentStore) Upsert(ctx context.Context, department *models.Department) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	_, exists := f.departments[department.ID]
	copied := *department
	f.departments[department.ID] = &copied
	return !exists, nil
}

func (f *fakeDepartmentStore) GetAll(ctx context.Context) ([]*models.Department, error) {
	if f.getAllErr != nil {
		return nil, f.getAllErr
	}
	ids := make([]int64, 0, len(f.departments))
	for id := range f.departments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*models.Department, 0, len(ids))
	for _, id := range ids {
		result = append(result, f.departments[id])
	}
	return result, nil
}

func (f *fakeDepartmentStore) Count(ctx context.Context) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.departments)), nil
}

func (f *fakeDepartmentStore) DeleteByID(ctx context.Context, id int64) error {
	if _, ok := f.departments[id]; !ok {
		return apperrors.ErrDepartmentNotFound
	}
	delete(f.departments, id)
	return nil
}

// fakeCourseStore mimics the natural-key upsert of the real repository:
// (season, code, section) converges onto one row and keeps its surrogate id.
type fakeCourseStore struct {
	byNaturalKey map[string]*models.Course
	nextID       int64

	upsertErr error
	listErr   error
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{byNaturalKey: make(map[string]*models.Course)}
}

func naturalKey(course *models.Course) string {
	return fmt.Sprintf("%d:%s:%d", course.SeasonID, course.Code, course.Section)
}

func (f *fakeCourseStore) Upsert(ctx context.Context, course *models.Course) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	existing, ok := f.byNaturalKey[naturalKey(course)]
	if ok {
		course.ID = existing.ID
		copied := *course
		copied.Sections = existing.Sections
		f.byNaturalKey[naturalKey(course)] = &copied
		return false, nil
	}

	f.nextID++
	course.ID = f.nextID
	copied := *course
	f.byNaturalKey[naturalKey(course)] = &copied
	return true, nil
}

func (f *fakeCourseStore) ListBySeason(ctx context.Context, seasonID int64) ([]*models.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Course
	for _, course := range f.byNaturalKey {
		if course.SeasonID == seasonID {
			result = append(result, course)
		}
	}
	sortCourses(result)
	return result, nil
}

func (f *fakeCourseStore) ListBySeasonAndDepartment(ctx context.Context, seasonID, departmentID int64) ([]*models.Course, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var result []*models.Course
	for _, course := range f.byNaturalKey {
		if course.SeasonID == seasonID && course.DepartmentID == departmentID {
			result = append(result, course)
		}
	}
	sortCourses(result)
	return result, nil
}

func sortCourses(courses []*models.Course) {
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Code != courses[j].Code {
			return courses[i].Code < courses[j].Code
		}
		return courses[i].Section < courses[j].Section
	})
}

func (f *fakeCourseStore) get(seasonID int64, code string, section int) *models.Course {
	return f.byNaturalKey[fmt.Sprintf("%d:%s:%d", seasonID, code, section)]
}

// fakeSectionStore records meeting-block replacements per course id.
type fakeSectionStore struct {
	byCourse map[int64][]*models.CourseSection
	replaces int

	replaceErr error
}

func newFakeSectionStore() *fakeSectionStore {
	return &fakeSectionStore{byCourse: make(map[int64][]*models.CourseSection)}
}

func (f *fakeSectionStore) ReplaceForCourse(ctx context.Context, courseID int64, sections []*models.CourseSection) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaces++
	f.byCourse[courseID] = sections
	return nil
}

// fakeScheduleStore keeps schedules in memory with the same uniqueness rule
// as the real table: one name per owner.
type fakeScheduleStore struct {
	schedules map[int64]*models.SavedSchedule
	nextID    int64
}

func newFakeScheduleStore() *fakeScheduleStore {
	return &fakeScheduleStore{schedules: make(map[int64]*models.SavedSchedule)}
}

func (f *fakeScheduleStore) Create(ctx context.Context, schedule *models.SavedSchedule) error {
	for _, existing := range f.schedules {
		if existing.Owner == schedule.Owner && existing.Name == schedule.Name {
			return apperrors.ErrScheduleAlreadyExists
		}
	}
	f.nextID++
	schedule.ID = f.nextID
	schedule.CreatedAt = time.Now()
	schedule.UpdatedAt = schedule.CreatedAt
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleStore) GetByID(ctx context.Context, id int64, owner string) (*models.SavedSchedule, error) {
	schedule, ok := f.schedules[id]
	if !ok || schedule.Owner != owner {
		return nil, apperrors.ErrScheduleNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleStore) ListByOwner(ctx context.Context, owner string) ([]*models.SavedSchedule, error) {
	var result []*models.SavedSchedule
	for _, schedule := range f.schedules {
		if schedule.Owner == owner {
			result = append(result, schedule)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsFavorite != result[j].IsFavorite {
			return result[i].IsFavorite
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (f *fakeScheduleStore) SetFavorite(ctx context.Context, id int64, owner string, favorite bool) error {
	schedule, ok := f.schedules[id]
	if !ok || schedule.Owner != owner {
		return apperrors.ErrScheduleNotFound
	}
	schedule.IsFavorite = favorite
	return nil
}

func (f *fakeScheduleStore) DeleteByID(ctx context.Context, id int64, owner string) error {
	schedule, ok := f.schedules[id]
	if !ok || schedule.Owner != owner {
		return apperrors.ErrScheduleNotFound
	}
	delete(f.schedules, id)
	return nil
}

// fakeInvalidator counts cache clears.
type fakeInvalidator struct {
	clears int
}

func (f *fakeInvalidator) Clear() {
	f.clears++
}

var errStorage = errors.New("storage unavailable")
