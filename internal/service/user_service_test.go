package service

import (
	"ThreadFarm/internal/api/dto"
	"ThreadFarm/internal/model"
	"ThreadFarm/internal/pkg/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memUserRepo struct {
	nextID uint64
	users  map[uint64]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[uint64]*model.User{}}
}

func (s *memUserRepo) CreateUser(_ context.Context, user *model.User) error {
	user.ID = s.nextID
	s.nextID++
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserRepo) GetUserByID(_ context.Context, id uint64) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *memUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memUserRepo) UpdateUser(_ context.Context, id uint64, updates map[string]interface{}) error {
	user, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for key, value := range updates {
		switch key {
		case "nickname":
			user.Nickname = value.(string)
		case "avatar_url":
			user.AvatarURL = value.(string)
		}
	}
	return nil
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)

	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "creator01",
		Password: "super-secret",
	})
	require.NoError(t, err)

	user, err := repo.GetUserByUsername(context.Background(), "creator01")
	require.NoError(t, err)
	require.NotNil(t, user.Password)
	assert.NotEqual(t, "super-secret", *user.Password)
	// 昵称缺省取用户名
	assert.Equal(t, "creator01", user.Nickname)
}

func TestUserService_RegisterDuplicateUsername(t *testing.T) {
	svc := NewUserService(newMemUserRepo())

	require.NoError(t, svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "creator01", Password: "pw123456",
	}))
	err := svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "creator01", Password: "other123",
	})
	assert.ErrorIs(t, err, ErrUserUsernameExist)
}

func TestUserService_LoginRejections(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	require.NoError(t, svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "creator01", Password: "pw123456",
	}))

	_, err := svc.Login(context.Background(), &dto.CredentialDTO{Username: "", Password: ""})
	assert.ErrorIs(t, err, ErrMissingLoginCredentials)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Username: "nobody", Password: "pw123456"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Login(context.Background(), &dto.CredentialDTO{Username: "creator01", Password: "wrong-pw"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)
}

func TestUserService_GetUserInfo(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	require.NoError(t, svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "creator01", Password: "pw123456", Nickname: "Creator",
	}))

	info, err := svc.GetUserInfo(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "creator01", info.Username)
	assert.Equal(t, "Creator", info.Nickname)

	_, err = svc.GetUserInfo(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdateUserInfo(t *testing.T) {
	repo := newMemUserRepo()
	svc := NewUserService(repo)
	require.NoError(t, svc.Register(context.Background(), &dto.RegisterDTO{
		Username: "creator01", Password: "pw123456", Nickname: "Creator",
	}))

	info, err := svc.UpdateUserInfo(context.Background(), 1, &dto.UserUpdateDTO{
		Nickname: util.PtrString("New Name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", info.Nickname)
	// 未提供的字段保持原值
	assert.Empty(t, info.AvatarURL)

	info, err = svc.UpdateUserInfo(context.Background(), 1, &dto.UserUpdateDTO{
		AvatarURL: util.PtrString("http://minio/threadfarm/media/1/avatar.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", info.Nickname)
	assert.Equal(t, "http://minio/threadfarm/media/1/avatar.png", info.AvatarURL)

	// 空补丁与空昵称都拒绝
	_, err = svc.UpdateUserInfo(context.Background(), 1, &dto.UserUpdateDTO{})
	assert.ErrorIs(t, err, ErrParamInvalid)
	_, err = svc.UpdateUserInfo(context.Background(), 1, &dto.UserUpdateDTO{Nickname: util.PtrString("")})
	assert.ErrorIs(t, err, ErrParamInvalid)

	_, err = svc.UpdateUserInfo(context.Background(), 42, &dto.UserUpdateDTO{Nickname: util.PtrString("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
