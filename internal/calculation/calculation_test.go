package calculation

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"PokerPal/internal/equity"
	"PokerPal/internal/evaluator"

	"github.com/alicebob/miniredis/v2"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func seedPtr(n int64) *int64 { return &n }

func newTestService(repo Repo, timeout time.Duration) *Service {
	calc := equity.NewCalculator(evaluator.NewTreys(), equity.WithWorkers(2), equity.WithLogger(log.New(io.Discard)))
	return NewService(calc, repo, time.Minute, timeout, log.New(io.Discard))
}

func flopRequest() Request {
	return Request{
		Hands:   [][]string{{"As", "Ks"}, {"2c", "3d"}},
		Board:   []string{"Ac", "Kd", "2h"},
		NumSims: intPtr(500),
		Seed:    seedPtr(42),
	}
}

// ---------- 内存实现测试 ----------
func Test_MemoryRepo_SaveGetExpire(t *testing.T) {
	repo := NewMemoryRepo().(*memRepo)
	now := time.Now()
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	rec := &Record{ID: "r1", Key: "k1"}
	require.NoError(t, repo.Save(ctx, rec, time.Minute))

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	got, err = repo.FindByKey(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	got, err = repo.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)

	now = now.Add(2 * time.Minute)
	got, err = repo.FindByKey(ctx, "k1")
	assert.NoError(t, err)
	assert.Nil(t, got, "expired record must not be served")
}

// ---------- Redis（miniredis）实现测试 ----------
func Test_RedisRepo_SaveGetExpire(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := NewRedisRepo(rdb)
	ctx := context.Background()

	rec := &Record{
		ID:       "r1",
		Key:      "As-Ks|Ac|500|42",
		Response: equity.Response{Wins: []int{3, 1}, Ties: []int{0, 0}},
	}
	require.NoError(t, repo.Save(ctx, rec, time.Minute))
	assert.True(t, mr.Exists("calc:result:r1"))
	id, err := mr.Get("calc:req:As-Ks|Ac|500|42")
	require.NoError(t, err)
	assert.Equal(t, "r1", id)

	got, err := repo.Get(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []int{3, 1}, got.Response.Wins)

	got, err = repo.FindByKey(ctx, rec.Key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "r1", got.ID)

	mr.FastForward(2 * time.Minute)
	got, err = repo.Get(ctx, "r1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func keyOf(t *testing.T, req Request) string {
	t.Helper()
	hands, board, err := equity.Validate(req.Hands, req.Board)
	require.NoError(t, err)
	return requestKey(hands, board, req.NumSims, req.Seed)
}

func TestRequestKey(t *testing.T) {
	req := flopRequest()
	assert.Equal(t, "As-Ks,2c-3d|Ac-Kd-2h|500|42", keyOf(t, req))

	lower := flopRequest()
	lower.Hands = [][]string{{"as", "kS"}, {"2C", "3d"}}
	assert.Equal(t, keyOf(t, req), keyOf(t, lower))

	req.NumSims = nil
	assert.Equal(t, "As-Ks,2c-3d|Ac-Kd-2h|default|42", keyOf(t, req))

	req.Seed = nil
	assert.Empty(t, keyOf(t, req))
}

func TestServiceCachesSeededRequests(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), time.Second*5)
	ctx := context.Background()

	first, err := svc.Calculate(ctx, flopRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.Cached)
	assert.Empty(t, first.Error)
	assert.Equal(t, 500, first.Wins[0]+first.Wins[1]+first.Ties[0])

	second, err := svc.Calculate(ctx, flopRequest())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Response, second.Response)

	rec, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, flopRequest().Hands, rec.Request.Hands)
}

// 缓存命中前必须先校验：畸形手牌不能拿到已缓存的结果
func TestServiceValidatesBeforeCache(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), 5*time.Second)
	ctx := context.Background()

	_, err := svc.Calculate(ctx, flopRequest())
	require.NoError(t, err)
	cached, err := svc.Calculate(ctx, flopRequest())
	require.NoError(t, err)
	require.True(t, cached.Cached)

	tests := []struct {
		name  string
		hands [][]string
		want  string
	}{
		{"one token hand", [][]string{{"AsKs"}, {"2c", "3d"}}, "Player 1 must have exactly 2 cards"},
		{"padded token", [][]string{{" As", "Ks"}, {"2c", "3d"}}, "Invalid card ' As' for Player 1"},
		{"three token hand", [][]string{{"As", "K", "s"}, {"2c", "3d"}}, "Player 1 must have exactly 2 cards"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := flopRequest()
			req.Hands = tt.hands

			resp, err := svc.Calculate(ctx, req)
			require.Error(t, err)
			assert.True(t, equity.IsValidation(err))
			assert.False(t, resp.Cached)
			assert.Empty(t, resp.ID)
			assert.Equal(t, tt.want, resp.Error)
			assert.Equal(t, []int{0, 0}, resp.Wins)
			assert.Equal(t, []string{"Error", "Error"}, resp.HandRankings)
		})
	}
}

func TestServiceUnseededIsNotCached(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), 0)
	req := flopRequest()
	req.Seed = nil

	a, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	b, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, b.Cached)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestServiceErrorShape(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), 0)
	req := flopRequest()
	req.Hands = [][]string{{"As", "Ks"}, {"As", "3d"}}

	resp, err := svc.Calculate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, equity.IsValidation(err))
	assert.Equal(t, "Duplicate card 'As' found", resp.Error)
	assert.Empty(t, resp.ID)
	assert.Equal(t, []int{0, 0}, resp.Wins)
	assert.Equal(t, []string{"Error", "Error"}, resp.HandRankings)
}

func TestServiceTimeout(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), time.Minute)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	resp, err := svc.Calculate(ctx, flopRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "Calculation timed out", resp.Error)
}

// ---------- HTTP ----------
func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc)
	r.POST("/calculate", h.Calculate)
	r.GET("/calculations/:id", h.Get)
	return r
}

func doJSON(t *testing.T, r http.Handler, req *http.Request) (int, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestHandlerCalculateAndGet(t *testing.T) {
	r := newRouter(newTestService(NewMemoryRepo(), 5*time.Second))

	body := `{"hands":[["As","Ks"],["2c","3d"]],"board":["Ac","Kd","2h"],"num_sims":200,"seed":7}`
	code, resp := doJSON(t, r, httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, code)
	assert.NotContains(t, resp, "error")
	assert.Equal(t, []any{"Two Pair", "Pair"}, resp["hand_rankings"])
	assert.Len(t, resp["win_percentages"], 2)
	id, _ := resp["id"].(string)
	require.NotEmpty(t, id)

	code, rec := doJSON(t, r, httptest.NewRequest(http.MethodGet, "/calculations/"+id, nil))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, id, rec["id"])

	code, _ = doJSON(t, r, httptest.NewRequest(http.MethodGet, "/calculations/nope", nil))
	assert.Equal(t, http.StatusNotFound, code)
}

func TestHandlerMissingField(t *testing.T) {
	r := newRouter(newTestService(NewMemoryRepo(), 0))

	body := `{"hands":[["As","Ks"],["2c","3d"]]}`
	code, resp := doJSON(t, r, httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Missing required field: board", resp["error"])
	assert.Equal(t, []any{"Error", "Error"}, resp["hand_rankings"])
}

func TestHandlerValidationIsOK(t *testing.T) {
	r := newRouter(newTestService(NewMemoryRepo(), 0))

	body := `{"hands":[["As","Kx"]],"board":[]}`
	code, resp := doJSON(t, r, httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Invalid card 'Kx' for Player 1", resp["error"])
}

func TestHandlerTimeout(t *testing.T) {
	r := newRouter(newTestService(NewMemoryRepo(), time.Minute))

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()
	body := `{"hands":[["As","Ks"],["2c","3d"]],"board":[]}`
	req := httptest.NewRequest(http.MethodPost, "/calculate", strings.NewReader(body)).WithContext(ctx)

	code, resp := doJSON(t, r, req)
	assert.Equal(t, http.StatusRequestTimeout, code)
	assert.Equal(t, "Calculation timed out", resp["error"])
}
