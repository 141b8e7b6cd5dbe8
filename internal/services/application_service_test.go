// internal/services/application_service_test.go
package services

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gramseva/resicert-backend/internal/models"
	"github.com/gramseva/resicert-backend/internal/store"
)

type ApplicationServiceTestSuite struct {
	suite.Suite
	applications *store.MemoryApplicationStore
	roles        *store.MemoryRoleStore
	roleService  *RoleService
	service      *ApplicationService
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.applications = store.NewMemoryApplicationStore()
	suite.roles = store.NewMemoryRoleStore()
	suite.roleService = NewRoleService(suite.roles)
	suite.service = NewApplicationService(suite.applications, suite.roleService)

	require.NoError(suite.T(), suite.roles.SetRole("admin1", models.RoleAdmin))
}

func (suite *ApplicationServiceTestSuite) submit(principal, name string) *models.Application {
	app, err := suite.service.CreateApplication(principal, models.ApplicationForm{
		FullName:    name,
		DateOfBirth: "1988-11-02",
		PhoneNumber: "9000000000",
		IDNumber:    "ID-77",
		Address:     "5 Station Road",
	})
	require.NoError(suite.T(), err)
	return app
}

func (suite *ApplicationServiceTestSuite) TestCreateStampsOwnerAndNumber() {
	app := suite.submit("user1", "First Applicant")

	assert.Equal(suite.T(), models.FirstApplicationNumber, app.ApplicationNumber)
	assert.Equal(suite.T(), "user1", app.Principal)
	assert.Equal(suite.T(), models.ApplicationStatusPending, app.Status)
	assert.LessOrEqual(suite.T(), int64(app.Created), int64(app.LastUpdated))
}

func (suite *ApplicationServiceTestSuite) TestCreateAcceptsOpaqueForm() {
	// The core performs no content validation; an empty form is stored as-is.
	app, err := suite.service.CreateApplication("user1", models.ApplicationForm{})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.FirstApplicationNumber, app.ApplicationNumber)
}

func (suite *ApplicationServiceTestSuite) TestOptionalFieldsSurvive() {
	marital := "married"
	app, err := suite.service.CreateApplication("user1", models.ApplicationForm{
		FullName:      "Renewal Applicant",
		MaritalStatus: &marital,
		// previousResidenceCertNumber absent, not empty
	})
	require.NoError(suite.T(), err)

	stored, err := suite.service.GetApplicationByNumber("user1", app.ApplicationNumber)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), stored.MaritalStatus)
	assert.Equal(suite.T(), "married", *stored.MaritalStatus)
	assert.Nil(suite.T(), stored.PreviousResidenceCertNumber)
}

func (suite *ApplicationServiceTestSuite) TestConcurrentCreatesGetDistinctNumbers() {
	const n = 40
	var wg sync.WaitGroup
	numbers := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app, err := suite.service.CreateApplication("user1", models.ApplicationForm{})
			assert.NoError(suite.T(), err)
			numbers <- app.ApplicationNumber
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make([]int64, 0, n)
	for number := range numbers {
		seen = append(seen, number)
	}
	sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
	for i := 1; i < len(seen); i++ {
		assert.Less(suite.T(), seen[i-1], seen[i])
	}
}

func (suite *ApplicationServiceTestSuite) TestGetByNumberAuthorization() {
	app := suite.submit("user1", "Owner")

	// Owner and admin may read.
	got, err := suite.service.GetApplicationByNumber("user1", app.ApplicationNumber)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), app.ApplicationNumber, got.ApplicationNumber)

	got, err = suite.service.GetApplicationByNumber("admin1", app.ApplicationNumber)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "user1", got.Principal)

	// Any other identity is rejected.
	_, err = suite.service.GetApplicationByNumber("user2", app.ApplicationNumber)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	// A missing number is NotFound, distinguishable from Unauthorized.
	_, err = suite.service.GetApplicationByNumber("user1", 424242)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *ApplicationServiceTestSuite) TestOwnListScoping() {
	suite.submit("user1", "A")
	suite.submit("user2", "B")
	suite.submit("user1", "C")

	own, err := suite.service.GetOwnApplications("user1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), own, 2)
	for _, app := range own {
		assert.Equal(suite.T(), "user1", app.Principal)
	}

	empty, err := suite.service.GetOwnApplications("user3")
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), empty)
}

func (suite *ApplicationServiceTestSuite) TestGetAllRequiresAdmin() {
	suite.submit("user1", "A")
	suite.submit("user2", "B")

	_, err := suite.service.GetAllApplications("user1")
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	all, err := suite.service.GetAllApplications("admin1")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)
}

// Full walk through the submit/list/lookup/promote flow.
func (suite *ApplicationServiceTestSuite) TestRegistryScenario() {
	first := suite.submit("u1", "First")
	second := suite.submit("u2", "Second")
	assert.Equal(suite.T(), int64(1), first.ApplicationNumber)
	assert.Equal(suite.T(), int64(2), second.ApplicationNumber)

	own, err := suite.service.GetOwnApplications("u1")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), own, 1)
	assert.Equal(suite.T(), int64(1), own[0].ApplicationNumber)

	_, err = suite.service.GetApplicationByNumber("u2", 1)
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)

	all, err := suite.service.GetAllApplications("admin1")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)

	require.NoError(suite.T(), suite.roleService.AssignRole("admin1", "u2", models.RoleAdmin))

	all, err = suite.service.GetAllApplications("u2")
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), all, 2)
}

func TestApplicationServiceSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
