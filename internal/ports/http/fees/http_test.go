package feeshttp_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feesapp "github.com/redacok/redacok-backend/internal/application/fees"
	feeshttp "github.com/redacok/redacok-backend/internal/ports/http/fees"
	"github.com/redacok/redacok-backend/pkg/httpx"
	"github.com/redacok/redacok-backend/tests/builders"
	"github.com/redacok/redacok-backend/tests/mocks"
)

func newHandler(t *testing.T) (*feeshttp.HTTP, *mocks.FeeRangeRepo) {
	t.Helper()
	repo := mocks.NewFeeRangeRepo()
	return feeshttp.NewHTTP(feeshttp.Args{
		App:        feesapp.NewApp(feesapp.Args{Repo: repo}),
		Errhandler: httpx.NewErrorHandler(),
	}), repo
}

func quote(t *testing.T, h *feeshttp.HTTP, amount string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodGet, "/v1/fees/quote?amount="+amount, nil))
	return rec
}

func TestQuote(t *testing.T) {
	t.Parallel()

	t.Run("quotes percentage plus fixed fee", func(t *testing.T) {
		t.Parallel()

		h, repo := newHandler(t)
		repo.SeedRange(t, builders.NewFeeRangeBuilder().WithBounds(0, 1000).WithFee(5, 10).Build())

		rec := quote(t, h, "500")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Amount float64 `json:"amount"`
			Fee    float64 `json:"fee"`
			Total  float64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.InDelta(t, 500, body.Amount, 1e-9)
		assert.InDelta(t, 35, body.Fee, 1e-9)
		assert.InDelta(t, 535, body.Total, 1e-9)
	})

	t.Run("rejects non-finite and negative amounts", func(t *testing.T) {
		t.Parallel()

		h, _ := newHandler(t)
		for _, amount := range []string{"NaN", "Inf", "-Inf", "-5", "abc", ""} {
			rec := quote(t, h, amount)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "amount=%q", amount)
		}
	})
}
