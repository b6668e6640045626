package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/pkg/consts"
	"ThreadFarm/internal/pkg/redis"
	"ThreadFarm/internal/pkg/security"
	"ThreadFarm/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateUserInfo(ctx context.Context, id uint64, updateDTO *dto.UserUpdateDTO) (*dto.UserDTO, error)
	ExchangeAuthCode(ctx context.Context, code string) (string, error)
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByUsername(ctx, regDTO.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if findUser != nil {
		return ErrUserUsernameExist
	}

	user := &model.User{}
	if err = copier.Copy(user, regDTO); err != nil {
		return err
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}
	user.Password = &passwordHash
	if user.Nickname == "" {
		user.Nickname = user.Username
	}

	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	if credDTO.Username == "" || credDTO.Password == "" {
		return nil, ErrMissingLoginCredentials
	}

	user, err := s.userRepo.GetUserByUsername(ctx, credDTO.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Password == nil || security.CheckPasswordHash(credDTO.Password, *user.Password) != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	// 浏览器回跳流程使用的一次性授权码，5 分钟内有效
	authCode := uuid.NewString()
	if err = redis.SetWithExpiration(ctx, consts.AuthCodeKey+authCode, token, 5*time.Minute); err != nil {
		return nil, err
	}

	return &dto.LoginResultDTO{Token: token, AuthCode: authCode}, nil
}

// Logout 将 token 签名加入失效名单，剩余有效期内拒绝使用
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	return redis.SetWithExpiration(ctx, signature, "revoked", security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	userDTO := &dto.UserDTO{}
	if err = copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}

// UpdateUserInfo 按字段增量修改个人资料，返回更新后的用户信息
func (s *UserServiceImpl) UpdateUserInfo(ctx context.Context, id uint64, updateDTO *dto.UserUpdateDTO) (*dto.UserDTO, error) {
	updates := map[string]interface{}{}
	if updateDTO.Nickname != nil {
		if *updateDTO.Nickname == "" {
			return nil, ErrParamInvalid
		}
		updates["nickname"] = *updateDTO.Nickname
	}
	if updateDTO.AvatarURL != nil {
		updates["avatar_url"] = *updateDTO.AvatarURL
	}
	if len(updates) == 0 {
		return nil, ErrParamInvalid
	}

	if err := s.userRepo.UpdateUser(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUserInfo(ctx, id)
}

// ExchangeAuthCode 一次性授权码换取会话 token，用后即焚
func (s *UserServiceImpl) ExchangeAuthCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", ErrAuthCodeIncorrect
	}
	token, err := redis.GetDel(ctx, consts.AuthCodeKey+code)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrAuthCodeIncorrect
	}
	return token, nil
}
