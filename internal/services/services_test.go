package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AvaneeshKarthiks/FinWise/internal/events"
	"github.com/AvaneeshKarthiks/FinWise/internal/models"
	"github.com/AvaneeshKarthiks/FinWise/internal/repositories/mysql"
	"github.com/AvaneeshKarthiks/FinWise/internal/testutil"
	"github.com/AvaneeshKarthiks/FinWise/internal/validator"
)

type fixture struct {
	db        *gorm.DB
	services  ServiceManager
	publisher *events.MockEventPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := testutil.NewTestDB(t)
	repo := mysql.NewSQLRepository(mysql.RepositoryConfig{DB: db})
	publisher := events.NewMockEventPublisher(logger)

	sm := NewServiceManager(db, repo, logger, validator.New(), publisher)
	require.NoError(t, sm.Initialize(context.Background()))
	return &fixture{db: db, services: sm, publisher: publisher}
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve validator.ValidationErrors
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	return ve.Error()
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

func TestBlogService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	blogs := f.services.Blog()

	_, err := blogs.Create(ctx, &CreateBlogRequest{Title: "Only title"})
	assert.Equal(t, "title and slug are required", validationMessage(t, err))

	blog, err := blogs.Create(ctx, &CreateBlogRequest{Title: "Budgeting", Slug: "budgeting"})
	require.NoError(t, err)
	require.NotZero(t, blog.ID)

	_, err = blogs.Create(ctx, &CreateBlogRequest{Title: "Again", Slug: "budgeting"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	err = blogs.Update(ctx, blog.ID, UpdateRequest{"unknown": raw(`1`)})
	assert.Equal(t, "no updatable fields provided", validationMessage(t, err))

	require.NoError(t, blogs.Update(ctx, blog.ID, UpdateRequest{"content": raw(`"hello"`), "author_id": raw(`3`)}))
	got, err := blogs.GetByID(ctx, blog.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Content)
	assert.Equal(t, "hello", *got.Content)
	assert.Equal(t, uint(3), *got.AuthorID)

	assert.ErrorIs(t, blogs.Update(ctx, 999, UpdateRequest{"title": raw(`"x"`)}), ErrBlogNotFound)
	assert.ErrorIs(t, blogs.Delete(ctx, 999), ErrBlogNotFound)

	list, err := blogs.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 10, list.Size)

	require.NoError(t, blogs.Delete(ctx, blog.ID))
	_, err = blogs.GetByID(ctx, blog.ID)
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestCourseServiceRatingValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	courses := f.services.Course()

	_, err := courses.Create(ctx, &CreateCourseRequest{Title: "x", Rating: raw(`5.5`)})
	assert.Equal(t, "rating must be between 0 and 5", validationMessage(t, err))

	course, err := courses.Create(ctx, &CreateCourseRequest{Title: "Investing", Rating: raw(`"4.5"`)})
	require.NoError(t, err)
	require.NotNil(t, course.Rating)
	assert.Equal(t, 4.5, *course.Rating)

	err = courses.Update(ctx, course.ID, UpdateRequest{"title": raw(`"Renamed"`), "rating": raw(`7`)})
	assert.Equal(t, "rating must be between 0 and 5", validationMessage(t, err))

	got, err := courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Investing", got.Title)
	assert.Equal(t, 4.5, *got.Rating)

	require.NoError(t, courses.Update(ctx, course.ID, UpdateRequest{"rating": raw(`0`)}))
	got, err = courses.GetByID(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *got.Rating)

	assert.ErrorIs(t, courses.Update(ctx, 42, UpdateRequest{"rating": raw(`1`)}), ErrCourseNotFound)
}

func TestQuizService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	quizzes := f.services.Quiz()

	_, err := quizzes.Create(ctx, &CreateQuizRequest{Data: raw(`"not json"`)})
	assert.Equal(t, "data must be valid JSON", validationMessage(t, err))

	title := "Basics"
	quiz, err := quizzes.Create(ctx, &CreateQuizRequest{Title: &title, Data: raw(`{"questions":[{"q":"1+1","a":2}]}`)})
	require.NoError(t, err)

	got, err := quizzes.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	out, err := json.Marshal(got.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions":[{"q":"1+1","a":2}]}`, string(out))

	// A row written outside the normalizer is returned verbatim.
	require.NoError(t, f.db.Model(&models.Quiz{}).Where("id = ?", quiz.ID).Update("data", "legacy text").Error)
	got, err = quizzes.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, "legacy text", got.Data)

	require.NoError(t, quizzes.Update(ctx, quiz.ID, UpdateRequest{"data": raw(`null`)}))
	got, err = quizzes.GetByID(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Data)

	list, err := quizzes.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list.Quizzes, 1)

	_, err = quizzes.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestEmployeeLoginAcceptsBothSchemes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	employees := f.services.Employee()

	testutil.SeedEmployee(t, f.db, "plain@finwise.org", "hunter2", "")
	testutil.SeedEmployee(t, f.db, "hashed@finwise.org", models.SHA256Hex("hunter2"), "")

	for _, email := range []string{"plain@finwise.org", "hashed@finwise.org"} {
		employee, err := employees.Login(ctx, &EmployeeLoginRequest{Email: email, Password: "hunter2"})
		require.NoError(t, err, email)
		assert.Equal(t, email, employee.Email)
	}

	_, err := employees.Login(ctx, &EmployeeLoginRequest{Email: "plain@finwise.org", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = employees.Login(ctx, &EmployeeLoginRequest{Email: "ghost@finwise.org", Password: "hunter2"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = employees.Login(ctx, &EmployeeLoginRequest{Email: "plain@finwise.org"})
	assert.Equal(t, "email and password required", validationMessage(t, err))
}

func TestRehashPasswords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	employees := f.services.Employee()

	plain := testutil.SeedEmployee(t, f.db, "plain@finwise.org", "hunter2", models.SchemePlain)
	testutil.SeedEmployee(t, f.db, "tagged@finwise.org", models.SHA256Hex("pw"), models.SchemeSHA256)

	converted, err := employees.RehashPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, converted)

	stored, err := employees.GetByID(ctx, plain.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SchemeSHA256, stored.PasswordScheme)
	assert.Equal(t, models.SHA256Hex("hunter2"), stored.Password)

	_, err = employees.Login(ctx, &EmployeeLoginRequest{Email: "plain@finwise.org", Password: "hunter2"})
	assert.NoError(t, err)

	converted, err = employees.RehashPasswords(ctx)
	require.NoError(t, err)
	assert.Zero(t, converted)
}

func TestVolunteerWorkflow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	volunteers := f.services.Volunteer()

	comment := "happy to help"
	reg, err := volunteers.Register(ctx, &VolunteerRegisterRequest{
		Email:          "v@finwise.org",
		Password:       "secret",
		Name:           testutil.StrPtr("Vee"),
		InitialComment: &comment,
	})
	require.NoError(t, err)
	assert.NotZero(t, reg.ApprovalID)

	_, err = volunteers.Register(ctx, &VolunteerRegisterRequest{Email: "v@finwise.org", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = volunteers.Login(ctx, &VolunteerLoginRequest{Email: "v@finwise.org", Password: "secret"})
	assert.ErrorIs(t, err, ErrNotApproved)
	_, err = volunteers.Login(ctx, &VolunteerLoginRequest{Email: "v@finwise.org", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	pending, err := volunteers.ListPending(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending.Volunteers, 1)

	decision, err := volunteers.Decide(ctx, &DecisionRequest{VolunteerID: reg.VolunteerID, AdminID: 1, Action: "APPROVE"})
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, decision.Status)

	volunteer, err := volunteers.Login(ctx, &VolunteerLoginRequest{Email: "v@finwise.org", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, reg.VolunteerID, volunteer.ID)

	pending, err = volunteers.ListPending(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, pending.Volunteers)

	history, err := volunteers.ListApprovals(ctx, reg.VolunteerID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ApprovalPending, history[0].Status)
	assert.Nil(t, history[0].AdminID)
	assert.Equal(t, "happy to help", *history[0].Comment)
	assert.Equal(t, models.ApprovalApproved, history[1].Status)
	assert.Equal(t, uint(1), *history[1].AdminID)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 2)
	assert.Equal(t, events.TypeVolunteerRegistered, published[0].Type)
	assert.Equal(t, events.TypeVolunteerDecided, published[1].Type)
}

func TestDecideValidationAndUnknownVolunteer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	volunteers := f.services.Volunteer()

	_, err := volunteers.Decide(ctx, &DecisionRequest{VolunteerID: 1, AdminID: 1, Action: "bogus"})
	assert.Equal(t, "volunteer_id, admin_id and action('approve'|'reject') required", validationMessage(t, err))

	_, err = volunteers.Decide(ctx, &DecisionRequest{VolunteerID: 404, AdminID: 1, Action: "reject"})
	assert.ErrorIs(t, err, ErrVolunteerNotFound)

	var count int64
	require.NoError(t, f.db.Model(&models.Approval{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = volunteers.ListApprovals(ctx, 404)
	assert.ErrorIs(t, err, ErrVolunteerNotFound)
}

func TestRegisterRollsBackWhenApprovalInsertFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.db.Migrator().DropTable(&models.Approval{}))

	_, err := f.services.Volunteer().Register(ctx, &VolunteerRegisterRequest{Email: "r@finwise.org", Password: "pw"})
	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.False(t, storageErr.IsConnection())

	var count int64
	require.NoError(t, f.db.Model(&models.Volunteer{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestPublishFailureDoesNotFailRegistration(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.publisher.FailWith(errors.New("broker down"))

	reg, err := f.services.Volunteer().Register(ctx, &VolunteerRegisterRequest{Email: "p@finwise.org", Password: "pw"})
	require.NoError(t, err)
	assert.NotZero(t, reg.VolunteerID)
}

func TestServiceManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.NoError(t, f.services.HealthCheck(ctx))
	require.NoError(t, f.services.Shutdown(ctx))
	assert.Error(t, f.services.HealthCheck(ctx))
	assert.NoError(t, f.services.Shutdown(ctx))

	uninitialized := NewServiceManager(f.db, nil, slog.Default(), validator.New(), nil)
	assert.Panics(t, func() { uninitialized.Blog() })
}
