package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jobstack-io/apiserver/internal/services"
	"github.com/jobstack-io/apiserver/internal/store"
	"github.com/jobstack-io/apiserver/internal/token"
	"github.com/jobstack-io/apiserver/types"
)

type fakeUserRepo struct {
	users  map[string]types.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]types.User{}, nextID: 1}
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	user, ok := r.users[email]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return types.User{}, store.ErrDuplicate
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.Email] = user
	return user, nil
}

type fakeJobRepo struct {
	jobs   map[int]types.Job
	nextID int

	lastFilter types.JobFilter
	lastOffset int
	lastLimit  int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[int]types.Job{}, nextID: 1}
}

func (r *fakeJobRepo) List(ctx context.Context, filter types.JobFilter, offset, limit int) ([]types.Job, int, error) {
	r.lastFilter = filter
	r.lastOffset = offset
	r.lastLimit = limit

	all := make([]types.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		all = append(all, job)
	}
	return all, len(all), nil
}

func (r *fakeJobRepo) Get(ctx context.Context, id int) (types.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return types.Job{}, store.ErrNotFound
	}
	return job, nil
}

func (r *fakeJobRepo) Create(ctx context.Context, job types.Job) (types.Job, error) {
	job.ID = r.nextID
	r.nextID++
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, job types.Job) (types.Job, error) {
	if _, ok := r.jobs[job.ID]; !ok {
		return types.Job{}, store.ErrNotFound
	}
	r.jobs[job.ID] = job
	return job, nil
}

func (r *fakeJobRepo) Delete(ctx context.Context, id int) error {
	if _, ok := r.jobs[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.jobs, id)
	return nil
}

// testEnv wires the handlers against in-memory repositories.
type testEnv struct {
	router   *chi.Mux
	userRepo *fakeUserRepo
	jobRepo  *fakeJobRepo
	tokens   *token.Service
}

func newTestEnv() *testEnv {
	userRepo := newFakeUserRepo()
	jobRepo := newFakeJobRepo()

	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo, nil)
	tokens := token.NewService("test-secret", time.Hour)
	authMiddleware := RequireAuth(tokens)

	router := chi.NewRouter()
	router.Route("/api/user", func(r chi.Router) {
		UserRouter(r, userService, tokens)
	})
	router.Route("/api/job", func(r chi.Router) {
		JobRouter(r, jobService, authMiddleware)
	})

	return &testEnv{
		router:   router,
		userRepo: userRepo,
		jobRepo:  jobRepo,
		tokens:   tokens,
	}
}

func (e *testEnv) do(t *testing.T, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func (e *testEnv) registerAndLogin(t *testing.T, name, email string) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/api/user/register", "", RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "pw",
		Mobile:   "12345",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("register %s: status %d", email, resp.Code)
	}

	resp = e.do(t, http.MethodPost, "/api/user/login", "", LoginRequest{Email: email, Password: "pw"})
	if resp.Code != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.Code)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &tokenResp); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return tokenResp.Token
}

func validJobBody() types.Job {
	return types.Job{
		CompanyName:    "Acme Corp",
		LogoURL:        "/logos/acme.png",
		JobPosition:    "Backend Engineer",
		Salary:         120000,
		JobType:        "full-time",
		RemoteOrOffice: "remote",
		Location:       "Berlin",
		JobDescription: "Build services",
		AboutCompany:   "We make anvils",
		SkillsRequired: []string{"go", "sql"},
		AdditionalInfo: "Relocation support",
	}
}
