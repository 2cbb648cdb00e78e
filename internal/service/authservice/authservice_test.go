package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/jpalomino/subastas/internal/apperrors"
	"github.com/jpalomino/subastas/internal/domain"
	"github.com/jpalomino/subastas/pkg/auth"
)

func NewMock(t *testing.T) (*Service, *MockRepo, *MockBalanceService, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	balanceService := NewMockBalanceService(ctrl)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	service := New(repo, balanceService, hashService, jwtService, 15*time.Minute)
	return service, repo, balanceService, hashService, jwtService
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name          string
		login         string
		password      string
		prepareMock   func(userRepo *MockRepo, balanceService *MockBalanceService, passwordHasher *auth.MockHashServiceInterface)
		expectedError error
	}{
		{
			name:     "Successful registration creates a client with a balance",
			login:    "mrivera",
			password: "testpassword",
			prepareMock: func(userRepo *MockRepo, balanceService *MockBalanceService, passwordHasher *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByLogin(context.Background(), "mrivera").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				userRepo.EXPECT().Create(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, user *domain.User) (*domain.User, error) {
					assert.Equal(t, domain.RoleClient, user.Role)
					user.ID = 1
					return user, nil
				})
				balanceService.EXPECT().CreateBalance(context.Background(), 1).Return(&domain.BalanceAccount{UserID: 1}, nil)
			},
		},
		{
			name:     "User already exists",
			login:    "mrivera",
			password: "testpassword",
			prepareMock: func(userRepo *MockRepo, balanceService *MockBalanceService, passwordHasher *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByLogin(context.Background(), "mrivera").Return(&domain.User{ID: 1, Login: "mrivera"}, nil)
			},
			expectedError: apperrors.Conflict(apperrors.CodeDuplicateUser, "username already taken"),
		},
		{
			name:     "Balance creation failure aborts registration",
			login:    "mrivera",
			password: "testpassword",
			prepareMock: func(userRepo *MockRepo, balanceService *MockBalanceService, passwordHasher *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByLogin(context.Background(), "mrivera").Return(nil, nil)
				passwordHasher.EXPECT().HashPassword("testpassword").Return("hashedpassword", nil)
				userRepo.EXPECT().Create(context.Background(), gomock.Any()).DoAndReturn(func(ctx context.Context, user *domain.User) (*domain.User, error) {
					user.ID = 1
					return user, nil
				})
				balanceService.EXPECT().CreateBalance(context.Background(), 1).Return(nil, errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, balanceService, passwordHasher, _ := NewMock(t)
			tt.prepareMock(userRepo, balanceService, passwordHasher)

			user, err := service.Register(context.Background(), tt.login, tt.password)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, user.ID)
				assert.Equal(t, domain.RoleClient, user.Role)
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name          string
		prepareMock   func(userRepo *MockRepo, passwordHasher *auth.MockHashServiceInterface)
		expectedError error
	}{
		{
			name: "Valid credentials",
			prepareMock: func(userRepo *MockRepo, passwordHasher *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByLogin(context.Background(), "mrivera").Return(&domain.User{ID: 1, Login: "mrivera", PasswordHash: "hash", Role: domain.RoleClient}, nil)
				passwordHasher.EXPECT().ComparePassword("hash", "testpassword").Return(true)
			},
		},
		{
			name: "Unknown user",
			prepareMock: func(userRepo *MockRepo, passwordHasher *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByLogin(context.Background(), "mrivera").Return(nil, nil)
			},
			expectedError: errors.New("invalid credentials"),
		},
		{
			name: "Wrong password",
			prepareMock: func(userRepo *MockRepo, passwordHasher *auth.MockHashServiceInterface) {
				userRepo.EXPECT().FindByLogin(context.Background(), "mrivera").Return(&domain.User{ID: 1, Login: "mrivera", PasswordHash: "hash"}, nil)
				passwordHasher.EXPECT().ComparePassword("hash", "testpassword").Return(false)
			},
			expectedError: errors.New("invalid credentials"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, userRepo, _, passwordHasher, _ := NewMock(t)
			tt.prepareMock(userRepo, passwordHasher)

			user, err := service.Authenticate(context.Background(), "mrivera", "testpassword")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "mrivera", user.Login)
			}
		})
	}
}

func TestGenerateToken(t *testing.T) {
	service, _, _, _, jwtService := NewMock(t)

	jwtService.EXPECT().GenerateJWT(1, domain.RoleClient, gomock.Any()).Return("token", nil)

	token, err := service.GenerateToken(1, domain.RoleClient)
	assert.NoError(t, err)
	assert.Equal(t, "token", token)
}
