package main

import (
	"encoding/json"
	"io"
	"jcr/src/db"
	"jcr/src/middlewares"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB   *gorm.DB
	Mock *sqlmock.Sqlmock
}

func (s *TestSuite) SetupSuite() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("rentaldate", rentalDateValidatorFunc)
		v.RegisterValidation("clocktime", clockTimeValidatorFunc)
	}

	d, mock := db.NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = &mock
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthRequired() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(middlewares.AuthMiddleware)
	bookingHandlers(authorized)

	s.Run("Should reject a request without a bearer token", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings/all", nil)
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})

	s.Run("Should reject a malformed bearer token", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/bookings/all", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 401, w.Code)
	})
}

func (s *TestSuite) TestRescheduleDateValidation() {
	router := setupRouter()
	authorized := apiv1Group(router)
	authorized.Use(func(ctx *gin.Context) {
		ctx.Set("id", uint(1))
	})
	bookingHandlers(authorized)
	calendarHandlers(authorized)

	s.Run("Should reject a malformed startDate on booking update", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{"startDate": "garbage"}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("PUT", "/api/v1/bookings/JCR010001/update", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a malformed endDate on reschedule", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{"endDate": "garbage"}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("PUT", "/api/v1/calendar/JCR010001", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestCustomerSignupValidation() {
	router := setupRouter()
	publicRoutes(router)

	w := httptest.NewRecorder()
	jbody := map[string]any{
		"name": "Test Customer",
	}
	sbody, _ := json.Marshal(&jbody)
	req, _ := http.NewRequest("POST", "/api/v1/customer/signup", strings.NewReader(string(sbody)))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)

	rbytes, err := io.ReadAll(w.Body)
	assert.Nil(s.T(), err)
	errMsg := gjson.Get(string(rbytes), "error").String()
	assert.NotEmpty(s.T(), errMsg)
}

func (s *TestSuite) TestCustomerSigninValidation() {
	router := setupRouter()
	publicRoutes(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/v1/customer/signin", strings.NewReader("{}"))
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 403, w.Code)
}

func (s *TestSuite) TestFilteredCarsValidation() {
	router := setupRouter()
	publicRoutes(router)

	// startDate is not a parseable calendar date, the rentaldate rule rejects it
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1/customer/filtered-cars?startDate=garbage&endDate=2025-01-02&startTime=10:00&endTime=10:00", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 400, w.Code)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
