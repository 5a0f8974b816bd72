package services

import (
	"testing"

	"apparel-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryUserStore struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[uint]models.User{}}
}

func (s *memoryUserStore) Create(user *models.User) error {
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) GetByID(id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (s *memoryUserStore) GetAll() ([]models.User, error) {
	all := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		all = append(all, user)
	}
	return all, nil
}

func (s *memoryUserStore) Update(user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memoryUserStore) Delete(id uint) error {
	delete(s.users, id)
	return nil
}

func TestUserService(t *testing.T) {
	svc := NewUserService(newMemoryUserStore())

	user := &models.User{Username: "warehouse1", Email: "wh1@example.com", CompanyCode: "APRL"}
	require.NoError(t, svc.CreateUser(user))
	require.NotZero(t, user.ID)

	got, err := svc.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "warehouse1", got.Username)

	got.Name = "Warehouse One"
	require.NoError(t, svc.UpdateUser(got))

	all, err := svc.GetAllUsers()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteUser(user.ID))
	_, err = svc.GetUserByID(user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
