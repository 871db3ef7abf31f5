package service

import (
	"context"
	"fmt"
	"strings"

	"hotel/infras/otel"
	"hotel/internal/domains/user/model"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

type User interface {
	// CreateIfAbsent stores req unless its email is taken and reports whether it did.
	CreateIfAbsent(ctx context.Context, req dto.CreateUserRequest) (bool, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo repository.User
	otel otel.Otel
}

func New(repo repository.User, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) CreateIfAbsent(ctx context.Context, req dto.CreateUserRequest) (created bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateIfAbsent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return false, err
	}

	exist, err := s.repo.Exist(ctx, gDto.And(gDto.Filter{
		Field:    model.FieldEmail,
		Operator: gDto.FilterOperatorEq,
		Value:    strings.ToLower(req.Email),
		Table:    model.TableName,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return false, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exist {
		return false, nil
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == "" {
		user = constant.ContextSystem
	}

	if _, err = s.repo.Insert(ctx, req.ToModel(user, hashed)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return false, nil
		}

		log.Error().Err(err).Msg("failed to create user")

		return false, fmt.Errorf("failed to create user: %w", err)
	}

	return true, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("userId", id).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}
