package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emirhan/coursedeck/internal/app/models"
	"github.com/emirhan/coursedeck/internal/app/models/dto"
	"github.com/emirhan/coursedeck/internal/pkg/cache"
	"github.com/emirhan/coursedeck/internal/pkg/upstream"
)

type catalogFixture struct {
	upstream    *fakeUpstream
	seasons     *fakeSeasonStore
	departments *fakeDepartmentStore
	courses     *fakeCourseStore
	cache       *cache.TTLCache[[]dto.CourseResponse]
	service     CatalogService
}

func newCatalogFixture(up *fakeUpstream, courseCache *cache.TTLCache[[]dto.CourseResponse]) *catalogFixture {
	if courseCache == nil {
		courseCache = cache.New[[]dto.CourseResponse](10 * time.Minute)
	}
	f := &catalogFixture{
		upstream:    up,
		seasons:     newFakeSeasonStore(),
		departments: newFakeDepartmentStore(),
		courses:     newFakeCourseStore(),
		cache:       courseCache,
	}
	f.service = NewCatalogService(up, f.seasons, f.departments, f.courses, courseCache, zerolog.Nop())
	return f
}

func (f *catalogFixture) storeSeason(season *models.Season) {
	_, _ = f.seasons.Upsert(context.Background(), season)
}

func (f *catalogFixture) storeDepartment(department *models.Department) {
	_, _ = f.departments.Upsert(context.Background(), department)
}

func (f *catalogFixture) storeCourse(course *models.Course) {
	_, _ = f.courses.Upsert(context.Background(), course)
}

func TestGetSeasonsPrefersStorage(t *testing.T) {
	up := &fakeUpstream{seasons: []upstream.Season{{ID: 99, Name: "live"}}}
	f := newCatalogFixture(up, nil)
	f.storeSeason(&models.Season{ID: 10, Name: "2025 Fall"})

	seasons := f.service.GetSeasons(context.Background())
	if len(seasons) != 1 || seasons[0].ID != 10 {
		t.Fatalf("seasons = %+v, want stored season 10", seasons)
	}
	if up.seasonCalls != 0 {
		t.Fatalf("upstream called %d times with populated store", up.seasonCalls)
	}
}

func TestGetSeasonsFallsBackToUpstream(t *testing.T) {
	up := &fakeUpstream{seasons: []upstream.Season{{ID: 99, Name: "live"}}}
	f := newCatalogFixture(up, nil)

	// Empty store falls through to the live API.
	seasons := f.service.GetSeasons(context.Background())
	if len(seasons) != 1 || seasons[0].ID != 99 {
		t.Fatalf("seasons = %+v, want live season 99", seasons)
	}

	// Failing store does too.
	f.seasons.getAllErr = errStorage
	f.storeSeason(&models.Season{ID: 10})
	seasons = f.service.GetSeasons(context.Background())
	if len(seasons) != 1 || seasons[0].ID != 99 {
		t.Fatalf("seasons with failing store = %+v, want live season 99", seasons)
	}
}

func TestGetSeasonsDoubleFailureIsEmpty(t *testing.T) {
	up := &fakeUpstream{seasonsErr: errStorage}
	f := newCatalogFixture(up, nil)

	seasons := f.service.GetSeasons(context.Background())
	if seasons == nil || len(seasons) != 0 {
		t.Fatalf("seasons = %+v, want empty non-nil slice", seasons)
	}
}

func TestGetCoursesFallbackChainAndCaching(t *testing.T) {
	up := &fakeUpstream{
		courses: map[string][]upstream.Course{
			courseKey(10, 1): {{Code: "LIVE101", Section: 1}},
		},
	}
	f := newCatalogFixture(up, nil)

	// Cold store: served live, and live results are never cached.
	courses := f.service.GetCourses(context.Background(), 10, 1)
	if len(courses) != 1 || courses[0].Code != "LIVE101" {
		t.Fatalf("courses = %+v, want live LIVE101", courses)
	}
	f.service.GetCourses(context.Background(), 10, 1)
	if up.courseCalls != 2 {
		t.Fatalf("upstream calls = %d, want 2 (live results not cached)", up.courseCalls)
	}
	if f.cache.Len() != 0 {
		t.Fatalf("cache entries = %d, want 0", f.cache.Len())
	}

	// Populated store: served from storage and cached.
	f.storeCourse(&models.Course{SeasonID: 10, DepartmentID: 1, Code: "CSE101", Section: 1})
	courses = f.service.GetCourses(context.Background(), 10, 1)
	if len(courses) != 1 || courses[0].Code != "CSE101" {
		t.Fatalf("courses = %+v, want stored CSE101", courses)
	}

	// Second read hits the memory tier, not the store.
	f.courses.listErr = errStorage
	courses = f.service.GetCourses(context.Background(), 10, 1)
	if len(courses) != 1 || courses[0].Code != "CSE101" {
		t.Fatalf("cached courses = %+v, want CSE101", courses)
	}
	if up.courseCalls != 2 {
		t.Fatalf("upstream calls = %d, want still 2", up.courseCalls)
	}
}

func TestGetCoursesExpiredCacheFallsThrough(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	courseCache := cache.NewWithClock[[]dto.CourseResponse](5*time.Minute, clock)

	up := &fakeUpstream{}
	f := newCatalogFixture(up, courseCache)
	f.storeCourse(&models.Course{SeasonID: 10, DepartmentID: 1, Code: "CSE101", Section: 1, Quota: 40})

	f.service.GetCourses(context.Background(), 10, 1)

	// Change the stored row, then move past the TTL: the stale entry must not
	// mask the store any longer.
	f.storeCourse(&models.Course{SeasonID: 10, DepartmentID: 1, Code: "CSE101", Section: 1, Quota: 30})
	now = now.Add(6 * time.Minute)

	courses := f.service.GetCourses(context.Background(), 10, 1)
	if len(courses) != 1 || courses[0].Quota != 30 {
		t.Fatalf("courses after expiry = %+v, want quota 30", courses)
	}
}

func TestGetAllCoursesForSeasonNeverCallsUpstream(t *testing.T) {
	up := &fakeUpstream{
		courses: map[string][]upstream.Course{
			courseKey(10, 1): {{Code: "LIVE101", Section: 1}},
		},
	}
	f := newCatalogFixture(up, nil)

	// Cold store yields empty; the bulk listing is never proxied live.
	courses := f.service.GetAllCoursesForSeason(context.Background(), 10)
	if len(courses) != 0 {
		t.Fatalf("courses = %+v, want empty", courses)
	}

	f.courses.listErr = errStorage
	courses = f.service.GetAllCoursesForSeason(context.Background(), 10)
	if len(courses) != 0 {
		t.Fatalf("courses with failing store = %+v, want empty", courses)
	}

	if up.courseCalls != 0 {
		t.Fatalf("upstream calls = %d, want 0", up.courseCalls)
	}
}

func TestGetAllCoursesForSeasonServesAndCaches(t *testing.T) {
	f := newCatalogFixture(&fakeUpstream{}, nil)
	f.storeCourse(&models.Course{SeasonID: 10, DepartmentID: 1, Code: "CSE101", Section: 1})
	f.storeCourse(&models.Course{SeasonID: 10, DepartmentID: 2, Code: "PHY101", Section: 1})
	f.storeCourse(&models.Course{SeasonID: 11, DepartmentID: 1, Code: "CSE102", Section: 1})

	courses := f.service.GetAllCoursesForSeason(context.Background(), 10)
	if len(courses) != 2 {
		t.Fatalf("courses = %d, want 2 for season 10", len(courses))
	}

	f.courses.listErr = errStorage
	courses = f.service.GetAllCoursesForSeason(context.Background(), 10)
	if len(courses) != 2 {
		t.Fatalf("cached courses = %d, want 2", len(courses))
	}
}

func TestIsReady(t *testing.T) {
	f := newCatalogFixture(&fakeUpstream{}, nil)

	if f.service.IsReady(context.Background()) {
		t.Fatal("ready with empty store")
	}

	f.storeSeason(&models.Season{ID: 10})
	if f.service.IsReady(context.Background()) {
		t.Fatal("ready with seasons but no departments")
	}

	f.storeDepartment(&models.Department{ID: 1})
	if !f.service.IsReady(context.Background()) {
		t.Fatal("not ready with both seasons and departments")
	}

	// Courses are not part of the gate, and a count failure reads as not
	// ready rather than an error.
	f.seasons.countErr = errStorage
	if f.service.IsReady(context.Background()) {
		t.Fatal("ready despite failing season count")
	}
}

func TestStats(t *testing.T) {
	f := newCatalogFixture(&fakeUpstream{}, nil)

	stats := f.service.Stats(context.Background())
	if stats.Ready || stats.Seasons != 0 || stats.Departments != 0 {
		t.Fatalf("cold stats = %+v, want empty", stats)
	}
	if stats.Source != "database" {
		t.Fatalf("source = %q, want database", stats.Source)
	}
	if stats.LastSync != "" {
		t.Fatalf("lastSync = %q, want empty before any sync", stats.LastSync)
	}

	f.storeSeason(&models.Season{ID: 10})
	f.storeDepartment(&models.Department{ID: 1})

	stats = f.service.Stats(context.Background())
	if !stats.Ready || stats.Seasons != 1 || stats.Departments != 1 {
		t.Fatalf("stats = %+v, want ready with 1/1", stats)
	}
	if stats.LastSync == "" {
		t.Fatal("lastSync empty after season upsert")
	}
	if _, err := time.Parse("2006-01-02T15:04:05Z07:00", stats.LastSync); err != nil {
		t.Fatalf("lastSync %q not RFC3339: %v", stats.LastSync, err)
	}

	f.departments.countErr = errStorage
	stats = f.service.Stats(context.Background())
	if stats.Error == "" {
		t.Fatal("stats error not reported on failing count")
	}
}

// TestSyncRefreshesCatalogReads drives the sync engine and the catalog
// together over one shared memory tier: a re-sync must be visible on the next
// read, without waiting out the TTL.
func TestSyncRefreshesCatalogReads(t *testing.T) {
	up := &fakeUpstream{
		seasons:     []upstream.Season{{ID: 10, Active: 1}},
		departments: []upstream.Department{{ID: 1}},
		courses: map[string][]upstream.Course{
			courseKey(10, 1): {{Code: "CSE101", Section: 1, Quota: 40}},
		},
	}

	courseCache := cache.New[[]dto.CourseResponse](time.Hour)
	f := newCatalogFixture(up, courseCache)
	syncService := NewSyncService(up, f.seasons, f.departments, f.courses, newFakeSectionStore(), courseCache, nil, zerolog.Nop())

	if err := syncService.SyncAll(context.Background()); err != nil {
		t.Fatalf("SyncAll: %v", err)
	}

	courses := f.service.GetCourses(context.Background(), 10, 1)
	if len(courses) != 1 || courses[0].Quota != 40 {
		t.Fatalf("courses = %+v, want quota 40", courses)
	}

	// Quota changes upstream; the next sync must push it through the cache.
	up.courses[courseKey(10, 1)] = []upstream.Course{{Code: "CSE101", Section: 1, Quota: 25}}
	if err := syncService.SyncAll(context.Background()); err != nil {
		t.Fatalf("second SyncAll: %v", err)
	}

	courses = f.service.GetCourses(context.Background(), 10, 1)
	if len(courses) != 1 || courses[0].Quota != 25 {
		t.Fatalf("courses after re-sync = %+v, want quota 25", courses)
	}
}

func TestDepartmentDTOAliases(t *testing.T) {
	f := newCatalogFixture(&fakeUpstream{}, nil)
	f.storeDepartment(&models.Department{ID: 1, Name: "CSE", FacultyID: 7, FacultyName: "Engineering"})

	departments := f.service.GetDepartments(context.Background())
	if len(departments) != 1 {
		t.Fatalf("departments = %+v, want 1", departments)
	}
	d := departments[0]
	if d.UnitID != 7 || d.UnitName != "Engineering" || d.UnitNameEn != "Engineering" {
		t.Fatalf("unit aliases = %+v, want faculty values mirrored", d)
	}
}
