package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ace-zone.backend/internal/domain/entities"
	domainerrors "ace-zone.backend/internal/domain/errors"
	"ace-zone.backend/internal/interfaces/http/middleware"
	"ace-zone.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type matchServiceStub struct {
	createFn func(ctx context.Context, input *entities.CreateMatchInput) (*entities.Match, error)
	getFn    func(ctx context.Context, id string) (*entities.MatchDetails, error)
	listFn   func(ctx context.Context) ([]*entities.MatchDetails, error)
	byStatus func(ctx context.Context, status entities.MatchStatus) ([]*entities.MatchDetails, error)
	setFn    func(ctx context.Context, id string, status entities.MatchStatus) error
}

func (s matchServiceStub) CreateMatch(ctx context.Context, input *entities.CreateMatchInput) (*entities.Match, error) {
	return s.createFn(ctx, input)
}
func (s matchServiceStub) GetMatch(ctx context.Context, id string) (*entities.MatchDetails, error) {
	return s.getFn(ctx, id)
}
func (s matchServiceStub) ListMatches(ctx context.Context) ([]*entities.MatchDetails, error) {
	return s.listFn(ctx)
}
func (s matchServiceStub) ListMatchesByStatus(ctx context.Context, status entities.MatchStatus) ([]*entities.MatchDetails, error) {
	return s.byStatus(ctx, status)
}
func (s matchServiceStub) SetStatus(ctx context.Context, id string, status entities.MatchStatus) error {
	return s.setFn(ctx, id, status)
}

type bookingServiceStub struct {
	joinFn    func(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error)
	bookAllFn func(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error)
	deleteFn  func(ctx context.Context, matchID string) error
}

func (s bookingServiceStub) JoinMatch(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error) {
	return s.joinFn(ctx, matchID, userID)
}
func (s bookingServiceStub) BookAllSlots(ctx context.Context, matchID string, userID uuid.UUID) (*entities.Match, error) {
	return s.bookAllFn(ctx, matchID, userID)
}
func (s bookingServiceStub) DeleteMatch(ctx context.Context, matchID string) error {
	return s.deleteFn(ctx, matchID)
}

type matchReportStub struct {
	mineFn         func(ctx context.Context, userID uuid.UUID) ([]*usecases.UserMatchView, error)
	participantsFn func(ctx context.Context, matchID string) ([]*usecases.ParticipantView, error)
}

func (s matchReportStub) UserMatches(ctx context.Context, userID uuid.UUID) ([]*usecases.UserMatchView, error) {
	return s.mineFn(ctx, userID)
}
func (s matchReportStub) MatchParticipants(ctx context.Context, matchID string) ([]*usecases.ParticipantView, error) {
	return s.participantsFn(ctx, matchID)
}

func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func testMatch(id string) *entities.Match {
	return &entities.Match{
		ID:        id,
		MatchType: entities.MatchTypeSolo,
		EntryFee:  50,
		StartTime: time.Now().Add(time.Hour),
		Status:    entities.MatchStatusOpen,
		CreatedAt: time.Now(),
	}
}

func TestMatchHandler_ListAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	open := entities.NewMatchDetails(testMatch("match-1"))
	matchSvc := matchServiceStub{
		listFn: func(context.Context) ([]*entities.MatchDetails, error) {
			return []*entities.MatchDetails{open}, nil
		},
		byStatus: func(_ context.Context, status entities.MatchStatus) ([]*entities.MatchDetails, error) {
			if status == entities.MatchStatusFull {
				return []*entities.MatchDetails{}, nil
			}
			return []*entities.MatchDetails{open}, nil
		},
		getFn: func(_ context.Context, id string) (*entities.MatchDetails, error) {
			if id == "match-1" {
				return open, nil
			}
			return nil, nil
		},
	}

	h := NewMatchHandler(matchSvc, bookingServiceStub{}, matchReportStub{})
	r := gin.New()
	r.GET("/matches", h.ListMatches)
	r.GET("/matches/:id", h.GetMatch)

	t.Run("list all", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/matches", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "match-1")
	})

	t.Run("list filtered", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/matches?status=full", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"matches":[]}`, w.Body.String())
	})

	t.Run("get found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/matches/match-1", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"slotsLeft":2`)
	})

	t.Run("get missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/matches/ghost", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, w.Body.String(), "Match not found")
	})
}

func TestMatchHandler_JoinMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	player := uuid.New()

	booking := bookingServiceStub{
		joinFn: func(_ context.Context, matchID string, userID uuid.UUID) (*entities.Match, error) {
			switch matchID {
			case "full-match":
				return nil, domainerrors.ErrMatchFull
			case "joined-match":
				return nil, domainerrors.ErrAlreadyJoined
			case "ghost":
				return nil, domainerrors.ErrNotFound
			}
			m := testMatch(matchID)
			m.Participants = []uuid.UUID{userID}
			return m, nil
		},
	}

	h := NewMatchHandler(matchServiceStub{}, booking, matchReportStub{})
	r := gin.New()
	r.POST("/matches/:id/join", withUser(player), h.JoinMatch)
	r.POST("/anon/:id/join", h.JoinMatch)

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches/match-1/join", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"slotsLeft":1`)
		require.Contains(t, w.Body.String(), player.String())
	})

	t.Run("full conflict", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches/full-match/join", nil))
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("already joined conflict", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches/joined-match/join", nil))
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("match missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches/ghost/join", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/anon/match-1/join", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMatchHandler_BookAllSlots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	booker := uuid.New()

	booking := bookingServiceStub{
		bookAllFn: func(_ context.Context, matchID string, userID uuid.UUID) (*entities.Match, error) {
			if matchID == "taken" {
				return nil, domainerrors.ErrMatchFull
			}
			m := testMatch(matchID)
			m.Participants = []uuid.UUID{userID, userID}
			return m, nil
		},
	}

	h := NewMatchHandler(matchServiceStub{}, booking, matchReportStub{})
	r := gin.New()
	r.POST("/matches/:id/book-all", withUser(booker), h.BookAllSlots)

	t.Run("success books both slots", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches/match-1/book-all", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"status":"full"`)
		require.Contains(t, w.Body.String(), `"bookAllTotal":100`)
	})

	t.Run("non-empty match conflicts", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/matches/taken/book-all", nil))
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMatchHandler_MyMatches(t *testing.T) {
	gin.SetMode(gin.TestMode)
	player := uuid.New()

	approved := entities.PaymentStatusApproved
	report := matchReportStub{
		mineFn: func(_ context.Context, userID uuid.UUID) ([]*usecases.UserMatchView, error) {
			require.Equal(t, player, userID)
			return []*usecases.UserMatchView{
				{MatchDetails: entities.NewMatchDetails(testMatch("match-1")), PaymentStatus: &approved},
			}, nil
		},
	}

	h := NewMatchHandler(matchServiceStub{}, bookingServiceStub{}, report)
	r := gin.New()
	r.GET("/matches/mine", withUser(player), h.MyMatches)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/matches/mine", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"paymentStatus":"approved"`)
}

func TestMatchHandler_CreateMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	matchSvc := matchServiceStub{
		createFn: func(_ context.Context, input *entities.CreateMatchInput) (*entities.Match, error) {
			switch input.ID {
			case "dupe":
				return nil, domainerrors.ErrDuplicateID
			case "bad":
				return nil, domainerrors.ErrInvalidInput
			}
			m := testMatch(input.ID)
			m.EntryFee = input.EntryFee
			return m, nil
		},
	}

	h := NewMatchHandler(matchSvc, bookingServiceStub{}, matchReportStub{})
	r := gin.New()
	r.POST("/admin/matches", h.CreateMatch)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/matches", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("created", func(t *testing.T) {
		w := post(`{"id":"match-1","entryFee":50,"startTime":"2026-09-01T18:00:00Z"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		require.Contains(t, w.Body.String(), `"entryFee":50`)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := post(`{"id":"match-2"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate id", func(t *testing.T) {
		w := post(`{"id":"dupe","entryFee":50,"startTime":"2026-09-01T18:00:00Z"}`)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid input", func(t *testing.T) {
		w := post(`{"id":"bad","entryFee":50,"startTime":"2026-09-01T18:00:00Z"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Invalid match input")
	})
}

func TestMatchHandler_DeleteMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	booking := bookingServiceStub{
		deleteFn: func(_ context.Context, matchID string) error {
			if matchID == "ghost" {
				return domainerrors.ErrNotFound
			}
			return nil
		},
	}

	h := NewMatchHandler(matchServiceStub{}, booking, matchReportStub{})
	r := gin.New()
	r.DELETE("/admin/matches/:id", h.DeleteMatch)

	t.Run("deleted", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/matches/match-1", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"deleted":true}`, w.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/admin/matches/ghost", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMatchHandler_SetMatchStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	matchSvc := matchServiceStub{
		setFn: func(_ context.Context, id string, status entities.MatchStatus) error {
			switch {
			case id == "ghost":
				return domainerrors.ErrNotFound
			case status == entities.MatchStatusOpen:
				return domainerrors.ErrInvalidInput
			case id == "done":
				return domainerrors.ErrInvalidTransition
			}
			return nil
		},
	}

	h := NewMatchHandler(matchSvc, bookingServiceStub{}, matchReportStub{})
	r := gin.New()
	r.PUT("/admin/matches/:id/status", h.SetMatchStatus)

	put := func(id, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/admin/matches/"+id+"/status", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("transition accepted", func(t *testing.T) {
		w := put("match-1", `{"status":"in-progress"}`)
		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"status":"in-progress"}`, w.Body.String())
	})

	t.Run("open is not a valid target", func(t *testing.T) {
		w := put("match-1", `{"status":"open"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Status must be in-progress or completed")
	})

	t.Run("backwards transition conflicts", func(t *testing.T) {
		w := put("done", `{"status":"in-progress"}`)
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("match missing", func(t *testing.T) {
		w := put("ghost", `{"status":"completed"}`)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMatchHandler_MatchParticipants(t *testing.T) {
	gin.SetMode(gin.TestMode)
	player := uuid.New()

	report := matchReportStub{
		participantsFn: func(_ context.Context, matchID string) ([]*usecases.ParticipantView, error) {
			switch matchID {
			case "ghost":
				return nil, domainerrors.ErrNotFound
			case "broken":
				return nil, errors.New("store down")
			}
			return []*usecases.ParticipantView{
				{User: player, Profile: &entities.UserProfile{DisplayName: "Alice"}},
			}, nil
		},
	}

	h := NewMatchHandler(matchServiceStub{}, bookingServiceStub{}, report)
	r := gin.New()
	r.GET("/admin/matches/:id/participants", h.MatchParticipants)

	t.Run("roster", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/matches/match-1/participants", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Alice")
	})

	t.Run("match missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/matches/ghost/participants", nil))
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store error maps to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/matches/broken/participants", nil))
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
