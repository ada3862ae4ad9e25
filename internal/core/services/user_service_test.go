package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/openlandreg/land_registry_app/internal/apperrors"
	"github.com/openlandreg/land_registry_app/internal/core/domain"
	portssvc "github.com/openlandreg/land_registry_app/internal/core/ports/services"
	"github.com/openlandreg/land_registry_app/internal/core/services"
	"github.com/openlandreg/land_registry_app/internal/dto"
	"github.com/openlandreg/land_registry_app/internal/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Test Officer",
		Username: "officer1",
		Password: "password123",
		Email:    "Officer1@Example.com",
		Role:     "OFFICER",
		District: "North",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "officer1" &&
			user.Email == "officer1@example.com" && // lowercased
			user.Role == domain.RoleOfficer &&
			user.PasswordHash != "" && user.PasswordHash != "password123"
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.NotEmpty(createdUser.UserID)
	suite.Equal(domain.RoleOfficer, createdUser.Role)
	suite.NotEqual("password123", createdUser.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "Test User",
		Username: "taken",
		Password: "password123",
		Email:    "taken@example.com",
		Role:     "CITIZEN",
		District: "North",
	}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(createdUser)
}

// --- CreateFederatedUser Tests ---

func (suite *UserServiceTestSuite) TestCreateFederatedUser_ReusesExistingAccount() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "asha@example.com", Role: domain.RoleCitizen}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "asha@example.com").Return(existing, nil).Once()

	user, err := suite.service.CreateFederatedUser(ctx, "google", "Asha@Example.com", "Asha Rao")

	suite.Require().NoError(err)
	suite.Equal(existing, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateFederatedUser_CreatesCitizenWithoutPassword() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Role == domain.RoleCitizen &&
			user.AuthProvider == "google" &&
			user.PasswordHash == ""
	})).Return(nil).Once()

	user, err := suite.service.CreateFederatedUser(ctx, "google", "new@example.com", "New User")

	suite.Require().NoError(err)
	suite.Equal(domain.RoleCitizen, user.Role)
	suite.Empty(user.PasswordHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "asha", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "asha", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authenticated.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Username: "asha", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "asha").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "asha", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(authenticated)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUserMapsToUnauthorized() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "ghost", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(authenticated)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_FederatedAccountHasNoPassword() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString(), Username: "fed", AuthProvider: "google"}

	suite.mockUserRepo.On("FindUserByUsername", ctx, "fed").Return(user, nil).Once()

	authenticated, err := suite.service.AuthenticateUser(ctx, "fed", "anything")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(authenticated)
}

// --- GetUserByID Tests ---

func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(user)
}

// --- ListOfficers Tests ---

func (suite *UserServiceTestSuite) TestListOfficers_ScopedToDistrict() {
	ctx := context.Background()
	expected := []domain.User{{UserID: uuid.NewString(), Role: domain.RoleOfficer, District: "North"}}

	suite.mockUserRepo.On("FindUsersByRole", ctx, domain.RoleOfficer, "North").Return(expected, nil).Once()

	officers, err := suite.service.ListOfficers(ctx, "North")

	suite.Require().NoError(err)
	suite.Len(officers, 1)
}

// --- UpdateUser Tests ---

func (suite *UserServiceTestSuite) TestUpdateUser_PartialFields() {
	ctx := context.Background()
	userID := uuid.NewString()
	requesterID := uuid.NewString()
	existing := &domain.User{UserID: userID, Name: "Old Name", District: "North"}
	newName := "New Name"

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Name == newName && user.District == "North" && user.LastUpdatedBy == requesterID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, requesterID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("North", updated.District)
}

// --- DeleteUser Tests ---

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time"), requesterID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID, requesterID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("string")).
		Return(expectedErr).Once()

	err := suite.service.DeleteUser(ctx, userID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
}

// --- Refresh Token Tests ---

func (suite *UserServiceTestSuite) TestUpdateRefreshToken_Passthrough() {
	ctx := context.Background()
	userID := uuid.NewString()
	expiry := time.Now().Add(time.Hour)

	suite.mockUserRepo.On("UpdateRefreshToken", ctx, userID, "hash", expiry).Return(nil).Once()

	err := suite.service.UpdateRefreshToken(ctx, userID, "hash", expiry)

	suite.Require().NoError(err)
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
