package service

import (
	"fmt"
	"log/slog"

	"stride/internal/model"
	"stride/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepository.ByID(id)
}

// Delete removes the account. Goals, steps and settings go with it via
// foreign-key cascade.
func (s *UserService) Delete(id string) error {
	err := s.userRepository.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("account deleted", "user_id", id)
	return nil
}
