package services

import (
	"apparel-app/models"
)

// UserStore is the persistence surface the service needs. Satisfied by
// repositories.UserRepository.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
}

type UserService struct {
	repo UserStore
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{repo: repo}
}

// Create user
func (s *UserService) CreateUser(user *models.User) error {
	return s.repo.Create(user)
}

// Get user by ID
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

// Get all users
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// Update user
func (s *UserService) UpdateUser(user *models.User) error {
	return s.repo.Update(user)
}

// Delete user
func (s *UserService) DeleteUser(id uint) error {
	return s.repo.Delete(id)
}
