package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/promanager/promanager-api/internal/constants"
	"github.com/promanager/promanager-api/internal/models"
	"github.com/promanager/promanager-api/internal/repository"
	"github.com/promanager/promanager-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ShareHandlerTestSuite defines the test suite for ShareHandler
type ShareHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ShareHandler
}

// SetupTest runs before each test
func (suite *ShareHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewShareHandler(services.NewTaskService(taskRepo, userRepo, "http://localhost:3000"))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ShareHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ShareHandlerTestSuite) createUser(email string) *models.User {
	user := &models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ShareHandlerTestSuite) createTask(title, creatorID string) *models.Task {
	task := &models.Task{
		Title:     title,
		Priority:  models.TaskPriorityModerate,
		Status:    models.TaskStatusTodo,
		CreatorID: creatorID,
		Checklist: []models.ChecklistItem{
			{Description: "first step", Position: 0},
		},
	}
	suite.db.Create(task)
	return task
}

func (suite *ShareHandlerTestSuite) createContext(method, url string, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != "" {
		c.Set(constants.ContextKeyUserID, userID)
	}

	return c, w
}

func (suite *ShareHandlerTestSuite) TestGenerateShareLink_Success() {
	user := suite.createUser("owner@example.com")
	task := suite.createTask("Shareable", user.ID)

	c, w := suite.createContext("PUT", "/api/tasks/"+task.ID+"/share", user.ID)
	setParam(c, "id", task.ID)
	suite.handler.GenerateShareLink(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "http://localhost:3000/shared/"+task.ID, response["shared_link"])
}

func (suite *ShareHandlerTestSuite) TestGenerateShareLink_StrangerForbidden() {
	owner := suite.createUser("owner@example.com")
	stranger := suite.createUser("stranger@example.com")
	task := suite.createTask("Private", owner.ID)

	c, w := suite.createContext("PUT", "/api/tasks/"+task.ID+"/share", stranger.ID)
	setParam(c, "id", task.ID)
	suite.handler.GenerateShareLink(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ShareHandlerTestSuite) TestViewSharedTask_OmitsOwnerFields() {
	user := suite.createUser("owner@example.com")
	task := suite.createTask("Public view", user.ID)
	task.AssignedEmail = "owner@example.com"
	suite.db.Save(task)

	// No authenticated user on the context: the route is public
	c, w := suite.createContext("GET", "/shared/"+task.ID, "")
	setParam(c, "id", task.ID)
	suite.handler.ViewSharedTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var payload map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &payload)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Public view", payload["title"])
	assert.Contains(suite.T(), payload, "checklist")

	// The sanitized projection never carries ownership data
	assert.NotContains(suite.T(), payload, "creator_id")
	assert.NotContains(suite.T(), payload, "assign_to_id")
	assert.NotContains(suite.T(), payload, "assigned_email")
}

func (suite *ShareHandlerTestSuite) TestViewSharedTask_NotFound() {
	c, w := suite.createContext("GET", "/shared/missing", "")
	setParam(c, "id", "00000000-0000-0000-0000-000000000000")
	suite.handler.ViewSharedTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestShareHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ShareHandlerTestSuite))
}
