package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userMocks "hotel/internal/domains/user/mocks"
	userModel "hotel/internal/domains/user/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
)

func staffUser(t *testing.T) userModel.User {
	t.Helper()

	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-id-123",
		Email:    "staff@hotel.local",
		Password: hashed,
		Name:     "Front Desk",
		Role:     constant.RoleStaff,
		Active:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT)

	validUser := staffUser(t)
	subject := jwt.Subject{UserID: validUser.ID, Email: validUser.Email, Role: validUser.Role}
	pair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		code      int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "Staff@Hotel.local", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(subject).Return(pair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login failure does not block login",
			req:  dto.LoginRequest{Email: "staff@hotel.local", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(subject).Return(pair, nil)
				mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update error"))
			},
		},
		{
			name: "invalid request",
			req:  dto.LoginRequest{Email: "not-an-email"},
			code: http.StatusBadRequest,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.local", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			code: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "staff@hotel.local", Password: "wrong-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
			},
			code: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "staff@hotel.local", Password: "password123"},
			setupMock: func() {
				inactive := validUser
				inactive.Active = false

				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			code: http.StatusForbidden,
		},
		{
			name: "store failure",
			req:  dto.LoginRequest{Email: "staff@hotel.local", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			code: http.StatusInternalServerError,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "staff@hotel.local", Password: "password123"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser, nil)
				mockJWT.EXPECT().GenerateTokenPair(subject).Return(nil, errors.New("token generation failed"))
			},
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			res, err := svc.Login(context.Background(), tt.req)

			if tt.code != 0 {
				assert.Equal(t, tt.code, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
			require.NotNil(t, res.User)
			assert.Equal(t, constant.RoleStaff, res.User.Role)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	svc := service.New(userMocks.NewMockUser(ctrl), &config.Config{}, mocks.NewOtel(), mockJWT)

	mockJWT.EXPECT().RefreshTokens("good").Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})
	require.NoError(t, err)
	assert.Equal(t, "new-access", res.AccessToken)
	assert.Nil(t, res.User)

	mockJWT.EXPECT().RefreshTokens("bad").Return(nil, jwt.ErrExpiredToken)

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), jwtMocks.NewMockJWT(ctrl))

	user := staffUser(t)
	signedIn := context.WithValue(context.Background(), constant.ContextKeyUserID, user.ID)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func()
		code      int
	}{
		{
			name: "changed",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						hashed, ok := fields[userModel.FieldPassword].(string)
						require.True(t, ok)
						assert.NoError(t, password.Verify("new-password", hashed))
						assert.Equal(t, user.ID, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "not signed in",
			ctx:  context.Background(),
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"},
			code: http.StatusUnauthorized,
		},
		{
			name: "same password",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"},
			code: http.StatusBadRequest,
		},
		{
			name: "wrong current password",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "guess-guess", NewPassword: "new-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			code: http.StatusBadRequest,
		},
		{
			name: "user removed",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "new-password"},
			setupMock: func() {
				mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			code: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setupMock != nil {
				tt.setupMock()
			}

			err := svc.ChangePassword(tt.ctx, tt.req)

			if tt.code == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}
}
