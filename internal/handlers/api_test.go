// internal/handlers/api_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gramseva/resicert-backend/internal/config"
	"github.com/gramseva/resicert-backend/internal/models"
	"github.com/gramseva/resicert-backend/internal/router"
	"github.com/gramseva/resicert-backend/internal/store"
	"github.com/gramseva/resicert-backend/internal/utils"
)

type APITestSuite struct {
	suite.Suite
	router       *gin.Engine
	applications *store.MemoryApplicationStore
	roles        *store.MemoryRoleStore
	ipCounter    int
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey: "test-secret",
			Issuer:    "resicert-test",
		},
	}

	suite.applications = store.NewMemoryApplicationStore()
	suite.roles = store.NewMemoryRoleStore()
	suite.router = router.New(cfg, suite.applications, suite.roles)

	require.NoError(suite.T(), suite.roles.SetRole("admin1", models.RoleAdmin))
}

func (suite *APITestSuite) token(principal string) string {
	token, err := utils.GenerateJWT(principal, "resicert-test", time.Hour)
	require.NoError(suite.T(), err)
	return token
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	// Distinct client IPs keep the per-IP rate limiters out of the way.
	suite.ipCounter++
	req.RemoteAddr = fmt.Sprintf("10.1.%d.%d:52100", suite.ipCounter/250, suite.ipCounter%250+1)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func sampleForm() map[string]interface{} {
	return map[string]interface{}{
		"fullName":           "Asha Patel",
		"dateOfBirth":        "1992-08-21",
		"gender":             1,
		"placeOfBirth":       "Nashik",
		"nationality":        0,
		"phoneNumber":        "9812345678",
		"email":              "asha@example.com",
		"idNumber":           "ID-2041",
		"address":            "8 Lake View",
		"currentAddress":     "8 Lake View",
		"startOfResidency":   "2021-06-01",
		"propertyOwner":      "K. Patel",
		"relationToLandlord": "daughter",
		"isHomeowner":        false,
		"profession":         "Engineer",
		"professionAddress":  "Tech Park, Phase 2",
		"professionPhone":    "020-5551212",
		"hasVehicle":         true,
		"isContractRenewal":  false,
		"previousApplications": 0,
	}
}

func (suite *APITestSuite) TestCreateApplication() {
	w := suite.request("POST", "/v1/applications", suite.token("u1"), sampleForm())

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.True(suite.T(), response["success"].(bool))

	data := response["data"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), data["applicationNumber"])

	application := data["application"].(map[string]interface{})
	assert.Equal(suite.T(), "u1", application["principal"])
	assert.Equal(suite.T(), "pending", application["status"])
	assert.Equal(suite.T(), "Asha Patel", application["fullName"])
}

func (suite *APITestSuite) TestCreateApplicationRequiresAuth() {
	w := suite.request("POST", "/v1/applications", "", sampleForm())
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.request("POST", "/v1/applications", "not-a-token", sampleForm())
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestGetOwnApplications() {
	suite.request("POST", "/v1/applications", suite.token("u1"), sampleForm())
	suite.request("POST", "/v1/applications", suite.token("u2"), sampleForm())

	w := suite.request("GET", "/v1/applications/mine", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	applications := data["applications"].([]interface{})
	require.Len(suite.T(), applications, 1)
	first := applications[0].(map[string]interface{})
	assert.Equal(suite.T(), "u1", first["principal"])
	assert.Equal(suite.T(), float64(1), first["applicationNumber"])
}

func (suite *APITestSuite) TestGetApplicationByNumber() {
	suite.request("POST", "/v1/applications", suite.token("u1"), sampleForm())

	// Owner sees the record.
	w := suite.request("GET", "/v1/applications/1", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// So does an admin.
	w = suite.request("GET", "/v1/applications/1", suite.token("admin1"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Another user does not.
	w = suite.request("GET", "/v1/applications/1", suite.token("u2"), nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// Missing number is NotFound, not Forbidden.
	w = suite.request("GET", "/v1/applications/404404", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request("GET", "/v1/applications/abc", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestAdminListApplications() {
	suite.request("POST", "/v1/applications", suite.token("u1"), sampleForm())
	suite.request("POST", "/v1/applications", suite.token("u2"), sampleForm())

	w := suite.request("GET", "/v1/admin/applications", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request("GET", "/v1/admin/applications", suite.token("admin1"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	data := suite.decode(w)["data"].(map[string]interface{})
	applications := data["applications"].([]interface{})
	assert.Len(suite.T(), applications, 2)
}

func (suite *APITestSuite) TestCallerRoleEndpoints() {
	w := suite.request("GET", "/v1/roles/me", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.Equal(suite.T(), "user", data["role"])

	w = suite.request("GET", "/v1/roles/me/is-admin", suite.token("u1"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	data = suite.decode(w)["data"].(map[string]interface{})
	assert.False(suite.T(), data["isAdmin"].(bool))

	w = suite.request("GET", "/v1/roles/me/is-admin", suite.token("admin1"), nil)
	data = suite.decode(w)["data"].(map[string]interface{})
	assert.True(suite.T(), data["isAdmin"].(bool))
}

func (suite *APITestSuite) TestAssignRole() {
	// Non-admins are stopped at the admin gate.
	w := suite.request("PUT", "/v1/admin/roles/u2", suite.token("u1"),
		map[string]string{"role": "admin"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// Unknown role values are rejected, never defaulted.
	w = suite.request("PUT", "/v1/admin/roles/u2", suite.token("admin1"),
		map[string]string{"role": "superuser"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.request("PUT", "/v1/admin/roles/u2", suite.token("admin1"),
		map[string]string{"role": "admin"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// The promotion is visible on the very next call.
	w = suite.request("GET", "/v1/roles/me/is-admin", suite.token("u2"), nil)
	data := suite.decode(w)["data"].(map[string]interface{})
	assert.True(suite.T(), data["isAdmin"].(bool))

	w = suite.request("GET", "/v1/admin/applications", suite.token("u2"), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
