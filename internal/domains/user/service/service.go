package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=User=MockUserService

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"slotbook/infras/otel"
	"slotbook/internal/domains/user/model"
	"slotbook/internal/domains/user/model/dto"
	"slotbook/internal/domains/user/repository"
	"slotbook/shared"
	"slotbook/shared/constant"
	gDto "slotbook/shared/dto"
	"slotbook/shared/failure"
	"slotbook/shared/password"
	gRepo "slotbook/shared/repository"
	"slotbook/shared/timezone"
)

var (
	ErrUserNotFound = failure.NotFound("user not found")
	ErrEmailTaken   = failure.Conflict("email already registered")
)

// User is the account store used by authentication and by reservations that
// snapshot the booking user.
type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	TouchLastLogin(ctx context.Context, id string) error
	ChangePassword(ctx context.Context, id, hashedPassword string) error
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

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exists, err := s.repo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return user, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return user, ErrEmailTaken
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return user, fmt.Errorf("failed to hash password: %w", err)
	}

	user = req.ToModel(constant.ContextGuest, hashed)

	if err = s.repo.Insert(ctx, user); err != nil {
		if gRepo.IsViolation(err, constant.PqErrorCodeUniqueViolation) {
			return model.User{}, ErrEmailTaken
		}

		log.Error().Err(err).Msg("failed to create user")

		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *serviceImpl) FindByID(ctx context.Context, id string) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.FindByID")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) FindByEmail(ctx context.Context, email string) (user model.User, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.FindByEmail")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.find(ctx, emailFilter(email))
}

func (s *serviceImpl) TouchLastLogin(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.TouchLastLogin")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, id)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update last login")

		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, id, hashedPassword string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, id)

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", id).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.User, error) {
	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, ErrUserNotFound
	}

	return user, nil
}

func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    model.NormalizeEmail(email),
				Table:    model.TableName,
			},
		},
	}
}
