package httptransport_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"surety/internal/callertoken"
	eventstore "surety/internal/events/store/memory"
	"surety/internal/platform/metrics"
	"surety/internal/surety/handler"
	"surety/internal/surety/models"
	"surety/internal/surety/opstatus"
	"surety/internal/surety/service"
	"surety/internal/surety/store"
	httptransport "surety/internal/transport/http"
	"surety/pkg/testutil"
)

func TestRegistryOverHTTP(t *testing.T) {
	owner := models.MustAddress("0xowner")
	genesis := models.MustAddress("0xa1")

	status, err := opstatus.New(owner, opstatus.NewMemoryStore())
	require.NoError(t, err)
	svc, err := service.New(store.NewMemoryLedger(), status, eventstore.NewInMemoryStore())
	require.NoError(t, err)
	require.NoError(t, svc.Bootstrap(context.Background(), genesis))

	tokens := callertoken.New("flow-key", "surety")
	reg := prometheus.NewRegistry()
	router := httptransport.NewRouter(httptransport.Config{Metrics: metrics.New(reg), Gatherer: reg},
		handler.New(svc, tokens, nil))

	as := func(caller string, req *http.Request) *http.Request {
		token, err := tokens.Issue(models.MustAddress(caller), time.Hour)
		require.NoError(t, err)
		return testutil.WithBearer(req, token)
	}
	fund := func(t *testing.T, airline string) {
		req := as(airline, testutil.NewJSONRequest(t, http.MethodPost, "/airlines/"+airline+"/funding", map[string]uint64{"amount": 10}))
		testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusOK)
	}
	register := func(t *testing.T, sponsor, candidate string) *models.RegistrationResult {
		req := as(sponsor, testutil.NewJSONRequest(t, http.MethodPost, "/airlines", map[string]string{"candidate": candidate}))
		rr := testutil.DoRequest(router, req)
		require.Contains(t, []int{http.StatusCreated, http.StatusAccepted}, rr.Code, rr.Body.String())
		return testutil.UnmarshalResponse[models.RegistrationResult](t, rr)
	}

	testutil.Given(t, "a freshly bootstrapped registry", func(t *testing.T) {
		testutil.When(t, "the unfunded genesis airline sponsors a candidate", func(t *testing.T) {
			req := as("0xa1", testutil.NewJSONRequest(t, http.MethodPost, "/airlines", map[string]string{"candidate": "0xa2"}))
			rr := testutil.DoRequest(router, req)

			testutil.Then(t, "the request is refused", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "sponsor_not_funded")
			})
		})

		testutil.When(t, "genesis is funded and registers three airlines", func(t *testing.T) {
			fund(t, "0xa1")
			for _, c := range []string{"0xa2", "0xa3", "0xa4"} {
				res := register(t, "0xa1", c)
				require.Equal(t, models.StatusRegistered, res.Status)
			}

			testutil.Then(t, "four airlines are registered", func(t *testing.T) {
				rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/airlines/count", nil))
				testutil.AssertJSONContains(t, rr, "registered_count", float64(4))
			})
		})

		testutil.When(t, "a fifth candidate is proposed", func(t *testing.T) {
			first := register(t, "0xa1", "0xa5")

			testutil.Then(t, "one vote is pending against a quorum of two", func(t *testing.T) {
				require.Equal(t, models.StatusVoteRecordedPending, first.Status)
				require.Equal(t, 1, first.Votes)
			})

			fund(t, "0xa2")
			second := register(t, "0xa2", "0xa5")

			testutil.Then(t, "the second funded vote registers it", func(t *testing.T) {
				require.Equal(t, models.StatusRegistered, second.Status)
				rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodGet, "/airlines/0xa5", nil))
				testutil.AssertJSONContains(t, rr, "registered", true)
			})
		})

		testutil.When(t, "the owner pauses operations", func(t *testing.T) {
			req := as("0xowner", testutil.NewJSONRequest(t, http.MethodPut, "/operational", map[string]bool{"operational": false}))
			testutil.AssertStatus(t, testutil.DoRequest(router, req), http.StatusOK)

			testutil.Then(t, "funding is refused before any other check", func(t *testing.T) {
				req := as("0xa9", testutil.NewJSONRequest(t, http.MethodPost, "/airlines/0xa9/funding", map[string]uint64{"amount": 1}))
				testutil.AssertStatusAndError(t, testutil.DoRequest(router, req), http.StatusServiceUnavailable, "operational_status_disabled")
			})
		})
	})
}
