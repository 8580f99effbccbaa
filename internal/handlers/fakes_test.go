package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --------------------------------------------------
// Repository
// --------------------------------------------------

type fakeRepo struct {
	mu           sync.Mutex
	doctors      map[string]models.Doctor
	hours        map[string][]models.OpeningHour
	appointments []models.Appointment
	seq          int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		doctors: map[string]models.Doctor{
			"doc-1": {ID: "doc-1", Name: "Dr. Ana", Specialty: "Cardiology"},
			"doc-2": {ID: "doc-2", Name: "Dr. Bruno", Specialty: "Dermatology"},
		},
		hours: map[string][]models.OpeningHour{"doc-1": {
			{ID: "mon", DoctorID: "doc-1", Day: "MON", OpenHour: 9, CloseHour: 10.5},
		}},
	}
}

func (r *fakeRepo) GetDoctor(_ context.Context, id string) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	d.OpeningHours = r.hours[id]
	return &d, nil
}

func (r *fakeRepo) ListDoctors(_ context.Context, specialty string) ([]models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Doctor{}
	for _, d := range r.doctors {
		if specialty == "" || strings.EqualFold(d.Specialty, specialty) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRepo) ListOpeningHours(_ context.Context, doctorID string) ([]models.OpeningHour, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hours[doctorID], nil
}

func (r *fakeRepo) ReplaceOpeningHours(_ context.Context, doctorID string, hours []models.OpeningHour) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range hours {
		hours[i].ID = fmt.Sprintf("oh-%s-%s", doctorID, hours[i].Day)
	}
	r.hours[doctorID] = hours
	return nil
}

func (r *fakeRepo) CreateIfFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, other := range r.appointments {
		if other.DoctorID != ap.DoctorID {
			continue
		}
		if !domain.IsBlocking(domain.Status(other.Status)) {
			continue
		}
		if other.StartTime.Before(ap.EndTime) && other.EndTime.After(ap.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}
	r.seq++
	ap.ID = fmt.Sprintf("ap-%d", r.seq)
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *fakeRepo) find(match func(models.Appointment) bool) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if match(ap) {
			cp := ap
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) GetAppointmentForPatient(_ context.Context, id, patientID string) (*models.Appointment, error) {
	return r.find(func(ap models.Appointment) bool { return ap.ID == id && ap.PatientID == patientID })
}

func (r *fakeRepo) GetAppointmentForDoctor(_ context.Context, id, doctorID string) (*models.Appointment, error) {
	return r.find(func(ap models.Appointment) bool { return ap.ID == id && ap.DoctorID == doctorID })
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == ap.ID {
			r.appointments[i] = *ap
		}
	}
	return nil
}

func (r *fakeRepo) ListBlockingForPeriod(_ context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DoctorID != doctorID || !domain.IsBlocking(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointmentsForPeriod(_ context.Context, doctorID string, start, end time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForPatient(_ context.Context, patientID string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.PatientID == patientID {
			out = append(out, ap)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Opening hours cache
// --------------------------------------------------

type fakeCache struct {
	repo        *fakeRepo
	invalidated []string
}

func (c *fakeCache) OpeningHours(ctx context.Context, doctorID string) ([]availability.OpeningHour, error) {
	rows, err := c.repo.ListOpeningHours(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return models.OpeningHoursToDomain(rows), nil
}

func (c *fakeCache) Invalidate(_ context.Context, doctorID string) error {
	c.invalidated = append(c.invalidated, doctorID)
	return nil
}

// --------------------------------------------------
// Users
// --------------------------------------------------

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	seq   int
	fails error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]*models.User{}}
}

func (u *fakeUsers) EmailTaken(_ context.Context, email string) (bool, error) {
	if u.fails != nil {
		return false, u.fails
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.byID {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (u *fakeUsers) CreateUser(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq++
	user.ID = fmt.Sprintf("user-%d", u.seq)
	cp := *user
	u.byID[user.ID] = &cp
	return nil
}

func (u *fakeUsers) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, user := range u.byID {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (u *fakeUsers) FindUserByID(_ context.Context, id string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	user, ok := u.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

type fakeAuditStore struct {
	last infraRepo.AuditLogFilter
	logs []models.AuditLog
}

func (s *fakeAuditStore) ListAuditLogs(_ context.Context, f infraRepo.AuditLogFilter) ([]models.AuditLog, int64, error) {
	s.last = f
	return s.logs, int64(len(s.logs)), nil
}

// --------------------------------------------------
// Router
// --------------------------------------------------

type testServer struct {
	router *gin.Engine
	repo   *fakeRepo
	cache  *fakeCache
	users  *fakeUsers
	audits *fakeAuditStore
	tokens *auth.Tokens
	doctor *DoctorHandler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := newFakeRepo()
	cache := &fakeCache{repo: repo}
	users := newFakeUsers()
	audits := &fakeAuditStore{}
	tokens := auth.NewTokens("test-secret", time.Hour)
	dispatcher := audit.NewDispatcher(nopSink{}, nil)
	t.Cleanup(dispatcher.Close)

	authH := NewAuthHandler(users, tokens, nil)
	authH.emailOK = func(string) bool { return true }

	doctorH := NewDoctorHandler(repo, cache, ucAppointment.NewGetAvailability(repo, cache, nil), "UTC", nil)

	appointmentH := NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(repo, cache, dispatcher, nil, nil, "UTC"),
		ucAppointment.NewCancelAppointment(repo, dispatcher),
		ucAppointment.NewCompleteAppointment(repo, dispatcher),
		ucAppointment.NewConfirmAppointment(repo, dispatcher),
		ucAppointment.NewListPatientAppointments(repo),
		ucAppointment.NewListDoctorAgenda(repo),
		nil,
	)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.GET("/doctors", doctorH.List)
	api.GET("/doctors/:id", doctorH.Get)
	api.GET("/doctors/:id/opening-hours", doctorH.GetOpeningHours)
	api.GET("/doctors/:id/slots", doctorH.Slots)

	secured := api.Group("/", middleware.AuthMiddleware(tokens))
	secured.GET("/me", NewMeHandler(users).GetMe)
	secured.POST("/appointments", appointmentH.Create)
	secured.GET("/me/appointments", appointmentH.ListMine)
	secured.PATCH("/me/appointments/:id/cancel", appointmentH.Cancel)

	doctorOnly := secured.Group("/", middleware.RequireRole(auth.RoleDoctor))
	doctorOnly.PUT("/doctors/:id/opening-hours", doctorH.UpdateOpeningHours)
	doctorOnly.GET("/doctor/appointments", appointmentH.Agenda)
	doctorOnly.PATCH("/doctor/appointments/:id/confirm", appointmentH.Confirm)
	doctorOnly.PATCH("/doctor/appointments/:id/complete", appointmentH.Complete)
	doctorOnly.GET("/doctor/audit-logs", NewAuditLogsHandler(audits, nil).List)

	return &testServer{
		router: r,
		repo:   repo,
		cache:  cache,
		users:  users,
		audits: audits,
		tokens: tokens,
		doctor: doctorH,
	}
}

func (s *testServer) token(t *testing.T, subject, role, doctorID string) string {
	t.Helper()
	tok, err := s.tokens.Issue(subject, role, doctorID)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// nextMondayAt returns a wire instant for the first Monday after today at
// the given wall-clock hour and minute.
func nextMondayAt(hour, minute int) string {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC).Format("2006-01-02T15:04:05.000Z")
}
