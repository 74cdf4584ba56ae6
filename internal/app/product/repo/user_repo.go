package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/murkotick/product-launch-service/internal/app/product/domain"
	"github.com/murkotick/product-launch-service/internal/models/m_user"
)

// UserRepo builds mutations for users.
type UserRepo struct{}

func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

func (r *UserRepo) InsertMut(u *domain.User) *spanner.Mutation {
	if u == nil {
		return nil
	}
	return m_user.InsertMutation(u.ID(), u.FirstName(), u.LastName(), u.Email(),
		string(u.Role()), u.IsActive(), u.CreatedAt().UTC())
}
