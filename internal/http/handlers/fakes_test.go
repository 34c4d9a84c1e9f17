package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	types "github.com/edutax/edutax-backend/internal/domain"
	"github.com/edutax/edutax-backend/internal/platform/apierr"
	"github.com/edutax/edutax-backend/internal/platform/ctxutil"
	"github.com/edutax/edutax-backend/internal/platform/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	return log
}

// serve runs one request through a bare engine. A non-empty userID is attached
// the way the auth middleware would.
func serve(t *testing.T, method, route, target, userID string, body io.Reader, h gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Handle(method, route, func(c *gin.Context) {
		if userID != "" {
			ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: userID})
			c.Request = c.Request.WithContext(ctx)
		}
		h(c)
	})
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

type fakeCourseService struct {
	courses []*types.Course
	details map[string]*types.CourseDetail
	lessons map[uuid.UUID]*types.Lesson
	err     error
}

func (f *fakeCourseService) ListCourses(context.Context) ([]*types.Course, error) {
	return f.courses, f.err
}

func (f *fakeCourseService) GetCourseBySlug(_ context.Context, slug string) (*types.Course, error) {
	if d, ok := f.details[slug]; ok {
		return &d.Course, nil
	}
	return nil, f.err
}

func (f *fakeCourseService) GetCourseWithCurriculum(context.Context, uuid.UUID) (*types.CourseDetail, error) {
	return nil, f.err
}

func (f *fakeCourseService) GetCourseDetailBySlug(_ context.Context, slug string) (*types.CourseDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	if d, ok := f.details[slug]; ok {
		return d, nil
	}
	return nil, apierr.ErrCourseNotFound
}

func (f *fakeCourseService) ListModules(context.Context, uuid.UUID) ([]*types.Module, error) {
	return nil, f.err
}

func (f *fakeCourseService) ListLessons(_ context.Context, moduleID uuid.UUID) ([]*types.Lesson, error) {
	var out []*types.Lesson
	for _, l := range f.lessons {
		if l.ModuleID == moduleID {
			out = append(out, l)
		}
	}
	return out, f.err
}

func (f *fakeCourseService) GetLesson(_ context.Context, id uuid.UUID) (*types.Lesson, error) {
	return f.lessons[id], f.err
}

type enrollCall struct{ userID, courseID string }

type fakeEnrollmentService struct {
	calls    []enrollCall
	enrolled map[string]bool
	err      error
}

func (f *fakeEnrollmentService) IsEnrolled(_ context.Context, userID, courseID string) (bool, error) {
	return f.enrolled[userID+"/"+courseID], f.err
}

func (f *fakeEnrollmentService) Enroll(_ context.Context, userID, courseID string) (*types.Enrollment, error) {
	f.calls = append(f.calls, enrollCall{userID, courseID})
	if f.err != nil {
		return nil, f.err
	}
	if courseID == "" {
		return nil, apierr.ErrCourseIDRequired
	}
	if f.enrolled[userID+"/"+courseID] {
		return nil, apierr.ErrAlreadyEnrolled
	}
	cid, err := uuid.Parse(courseID)
	if err != nil {
		return nil, apierr.ErrCourseNotFound
	}
	return &types.Enrollment{ID: uuid.New(), UserID: userID, CourseID: cid}, nil
}

func (f *fakeEnrollmentService) ListEnrollments(context.Context, string) ([]*types.Enrollment, error) {
	return nil, f.err
}

type fakeUserService struct {
	users map[string]*types.User
	err   error
}

func (f *fakeUserService) UpsertUser(context.Context, types.UserProfile) (*types.User, error) {
	return nil, f.err
}

func (f *fakeUserService) GetUser(_ context.Context, id string) (*types.User, error) {
	return f.users[id], f.err
}

func (f *fakeUserService) GetMe(ctx context.Context) (*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := ctxutil.UserID(ctx)
	if id == "" {
		return nil, apierr.Unauthorized()
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apierr.ErrUserNotFound
	}
	return u, nil
}

type fakeAuthService struct {
	enabled   bool
	loginURL  string
	user      *types.User
	returnTo  string
	err       error
	logoutURL string
	gotReturn string
}

func (f *fakeAuthService) Enabled() bool { return f.enabled }

func (f *fakeAuthService) LoginURL(_ context.Context, returnTo string) (string, error) {
	f.gotReturn = returnTo
	if !f.enabled {
		return "", apierr.ErrLoginDisabled
	}
	return f.loginURL, f.err
}

func (f *fakeAuthService) CompleteLogin(context.Context, string, string) (*types.User, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.user, f.returnTo, nil
}

func (f *fakeAuthService) LogoutURL(postLogoutRedirect string) string {
	if f.logoutURL == "" {
		return "/"
	}
	return f.logoutURL + "?post_logout_redirect_uri=" + postLogoutRedirect
}

type fakeSessions struct {
	loggedIn  string
	loggedOut bool
	err       error
}

func (f *fakeSessions) Login(_ *gin.Context, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.loggedIn = userID
	return nil
}

func (f *fakeSessions) Logout(*gin.Context) error {
	f.loggedOut = true
	return nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

func (f fakePinger) Driver() string { return "sqlite" }
