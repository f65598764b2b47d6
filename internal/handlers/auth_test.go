package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/promanager/promanager-api/internal/auth"
	"github.com/promanager/promanager-api/internal/constants"
	"github.com/promanager/promanager-api/internal/models"
	"github.com/promanager/promanager-api/internal/repository"
	"github.com/promanager/promanager-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	db           *gorm.DB
	tokenManager *auth.TokenManager
	handler      *AuthHandler
}

// SetupTest runs before each test
func (suite *AuthHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.ChecklistItem{},
	)
	suite.Require().NoError(err)

	suite.tokenManager = auth.NewTokenManager("test-secret")
	userRepo := repository.NewUserRepository(suite.db)
	suite.handler = NewAuthHandler(services.NewAuthService(userRepo, suite.tokenManager))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthHandlerTestSuite) createTestUser(name, email, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	suite.db.Create(user)
	return user
}

func (suite *AuthHandlerTestSuite) createContext(method, url string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

func (suite *AuthHandlerTestSuite) createAuthContext(method, url string, body []byte, userID string) (*gin.Context, *httptest.ResponseRecorder) {
	c, w := suite.createContext(method, url, body)
	c.Set(constants.ContextKeyUserID, userID)
	return c, w
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	body, _ := json.Marshal(map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password123",
	})

	c, w := suite.createContext("POST", "/api/users/register", body)
	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var user models.User
	err := suite.db.Where("email = ?", "alice@example.com").First(&user).Error
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), user.ID)
	assert.NotEqual(suite.T(), "password123", user.PasswordHash)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{
		"name":     "Other Alice",
		"email":    "alice@example.com",
		"password": "password456",
	})

	c, w := suite.createContext("POST", "/api/users/register", body)
	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	body, _ := json.Marshal(map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
	})

	c, w := suite.createContext("POST", "/api/users/register", body)
	suite.handler.Register(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{
		"email":    "alice@example.com",
		"password": "password123",
	})

	c, w := suite.createContext("POST", "/api/users/login", body)
	suite.handler.Login(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	// The token resolves back to the user
	userID, err := suite.tokenManager.Verify(response["token"])
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, userID)
}

func (suite *AuthHandlerTestSuite) TestLogin_WrongPassword() {
	suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})

	c, w := suite.createContext("POST", "/api/users/login", body)
	suite.handler.Login(c)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_UnknownEmail() {
	body, _ := json.Marshal(map[string]any{
		"email":    "nobody@example.com",
		"password": "password123",
	})

	c, w := suite.createContext("POST", "/api/users/login", body)
	suite.handler.Login(c)

	// Same outcome as a wrong password, nothing leaks about the account
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestGetCurrentUser_Success() {
	user := suite.createTestUser("Alice", "alice@example.com", "password123")

	c, w := suite.createAuthContext("GET", "/api/users/me", nil, user.ID)
	suite.handler.GetCurrentUser(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "alice@example.com")
}

func (suite *AuthHandlerTestSuite) TestListUsers_OmitsCredentials() {
	suite.createTestUser("Alice", "alice@example.com", "password123")
	user := suite.createTestUser("Bob", "bob@example.com", "password456")

	c, w := suite.createAuthContext("GET", "/api/users", nil, user.ID)
	suite.handler.ListUsers(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var users []map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &users)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 2)
	for _, u := range users {
		assert.NotContains(suite.T(), u, "password")
		assert.NotContains(suite.T(), u, "password_hash")
	}
}

func (suite *AuthHandlerTestSuite) TestUpdateProfile_Success() {
	user := suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{"name": "Alice Cooper"})

	c, w := suite.createAuthContext("PATCH", "/api/users/me", body, user.ID)
	suite.handler.UpdateProfile(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.User
	suite.db.First(&updated, "id = ?", user.ID)
	assert.Equal(suite.T(), "Alice Cooper", updated.Name)
}

func (suite *AuthHandlerTestSuite) TestUpdateProfile_SameNameRejected() {
	user := suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{"name": "Alice"})

	c, w := suite.createAuthContext("PATCH", "/api/users/me", body, user.ID)
	suite.handler.UpdateProfile(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestUpdateProfile_WrongOldPassword() {
	user := suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{
		"old_password": "not-the-password",
		"new_password": "brand-new-password",
	})

	c, w := suite.createAuthContext("PATCH", "/api/users/me", body, user.ID)
	suite.handler.UpdateProfile(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestUpdateProfile_SamePasswordConflict() {
	user := suite.createTestUser("Alice", "alice@example.com", "password123")

	body, _ := json.Marshal(map[string]any{
		"old_password": "password123",
		"new_password": "password123",
	})

	c, w := suite.createAuthContext("PATCH", "/api/users/me", body, user.ID)
	suite.handler.UpdateProfile(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
