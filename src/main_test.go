package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	"triphub/src/controllers"
	"triphub/src/lib"
	"triphub/src/settlement"
	"triphub/src/store"
	"triphub/src/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var testSecret = []byte("test-secret")

type staticRoles map[string]types.Role

func (r staticRoles) Resolve(_ context.Context, email string) (types.Role, error) {
	if role, ok := r[email]; ok {
		return role, nil
	}
	return types.ROLE_USER, nil
}

type stubSettler struct {
	mu       sync.Mutex
	sessions []string
	outcome  settlement.Outcome
}

func (s *stubSettler) Settle(_ context.Context, sessionID string) (*settlement.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, sessionID)
	return &settlement.Result{Outcome: s.outcome, BookingID: 7, TransactionID: "pi_1"}, nil
}

type TestSuite struct {
	suite.Suite
	Mock    sqlmock.Sqlmock
	Router  *gin.Engine
	Settler *stubSettler
}

func (s *TestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	conn, mock, err := sqlmock.New()
	s.Require().NoError(err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	s.Require().NoError(err)

	s.Mock = mock
	s.Settler = &stubSettler{outcome: settlement.OutcomeSuccess}
	a := &app{
		api: &controllers.API{
			Store:   store.New(gormDB),
			Settler: s.Settler,
		},
		verifier: lib.JWTVerifier{Secret: testSecret},
		roles: staticRoles{
			"admin@example.com":  types.ROLE_ADMIN,
			"vendor@example.com": types.ROLE_VENDOR,
		},
	}
	registerValidators()
	s.Router = registerRoutes(setupRouter(), a)
}

func (s *TestSuite) token(email string) string {
	token, err := lib.IssueLocalToken(testSecret, "uid-"+email, email, time.Hour)
	s.Require().NoError(err)
	return token
}

func (s *TestSuite) do(method string, path string, email string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if email != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(email))
	}
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/", "", "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(s.T(), w.Header().Get("X-Request-ID"))
}

func (s *TestSuite) TestListTicketsIsPublic() {
	s.Mock.ExpectQuery(`SELECT \* FROM "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "vendor_email", "status"}).
			AddRow(1, "Dhaka to Sylhet", "vendor@example.com", "approved"))

	w := s.do(http.MethodGet, "/api/v1/tickets", "", "")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "Dhaka to Sylhet", gjson.Get(w.Body.String(), "data.0.title").String())
	assert.Equal(s.T(), "vendor@example.com", gjson.Get(w.Body.String(), "data.0.vendor.email").String())
	assert.NoError(s.T(), s.Mock.ExpectationsWereMet())
}

func (s *TestSuite) TestBookingsRequireToken() {
	w := s.do(http.MethodGet, "/api/v1/bookings", "", "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *TestSuite) TestRejectsForgedToken() {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/users/role", nil)
	forged, _ := lib.IssueLocalToken([]byte("other-secret"), "uid", "admin@example.com", time.Hour)
	req.Header.Set("Authorization", "Bearer "+forged)
	s.Router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *TestSuite) TestUserRole() {
	w := s.do(http.MethodGet, "/api/v1/users/role", "vendor@example.com", "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "vendor", gjson.Get(w.Body.String(), "role").String())
}

func (s *TestSuite) TestAdminRoutesRejectOtherRoles() {
	for _, email := range []string{"rider@example.com", "vendor@example.com"} {
		w := s.do(http.MethodPatch, "/api/v1/tickets/advertise/1", email, `{"isAdvertised":true}`)
		assert.Equal(s.T(), http.StatusForbidden, w.Code, email)

		w = s.do(http.MethodPatch, "/api/v1/vendors/fraud", email, `{"email":"bad@example.com"}`)
		assert.Equal(s.T(), http.StatusForbidden, w.Code, email)

		w = s.do(http.MethodGet, "/api/v1/payments/all", email, "")
		assert.Equal(s.T(), http.StatusForbidden, w.Code, email)
	}
}

func (s *TestSuite) TestVendorRoutesRejectUsers() {
	w := s.do(http.MethodPost, "/api/v1/tickets", "rider@example.com", `{}`)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/api/v1/vendor/bookings", "rider@example.com", "")
	assert.Equal(s.T(), http.StatusForbidden, w.Code)
}

func (s *TestSuite) TestAdminListsUsers() {
	s.Mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "role"}).AddRow(1, "rider@example.com", "user"))

	w := s.do(http.MethodGet, "/api/v1/users", "admin@example.com", "")

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "rider@example.com", gjson.Get(w.Body.String(), "data.0.email").String())
}

func (s *TestSuite) TestPaymentSuccessOutcomes() {
	cases := map[settlement.Outcome]int{
		settlement.OutcomeSuccess:               http.StatusOK,
		settlement.OutcomeAlreadyProcessed:      http.StatusOK,
		settlement.OutcomePaymentIncomplete:     http.StatusPaymentRequired,
		settlement.OutcomeInsufficientInventory: http.StatusConflict,
		settlement.OutcomeBookingAlreadyPaid:    http.StatusConflict,
	}
	for outcome, status := range cases {
		s.Settler.outcome = outcome
		w := s.do(http.MethodPost, "/api/v1/payment-success?session_id=cs_1", "rider@example.com", "")
		assert.Equal(s.T(), status, w.Code, string(outcome))
		assert.Equal(s.T(), string(outcome), gjson.Get(w.Body.String(), "data.outcome").String())
	}
}

func (s *TestSuite) TestPaymentSuccessRequiresSession() {
	w := s.do(http.MethodPost, "/api/v1/payment-success", "rider@example.com", "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Empty(s.T(), s.Settler.sessions)
}

func (s *TestSuite) TestStripeWebhookSettles() {
	s.T().Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	payload := fmt.Sprintf(`{
		"id": "evt_1",
		"object": "event",
		"api_version": %q,
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_hook", "object": "checkout.session", "payment_status": "paid"}}
	}`, stripe.APIVersion)
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: []byte(payload),
		Secret:  "whsec_test",
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/webhook/stripe", bytes.NewBuffer(signed.Payload))
	req.Header.Set("Stripe-Signature", signed.Header)
	s.Router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), []string{"cs_hook"}, s.Settler.sessions)
}

func (s *TestSuite) TestStripeWebhookRejectsBadSignature() {
	s.T().Setenv("STRIPE_WEBHOOK_SECRET", "whsec_test")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/webhook/stripe", bytes.NewBufferString(`{}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=deadbeef")
	s.Router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.Empty(s.T(), s.Settler.sessions)
}

func (s *TestSuite) TestMaintenanceMode() {
	s.T().Setenv("MAINTENANCE_MODE", "true")
	w := s.do(http.MethodGet, "/api/v1/tickets/latest", "", "")
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
