package auth

import (
	"testing"

	"wanderlust-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestRegister_HashesPassword(t *testing.T) {
	db := setupAuthDB(t)

	u, err := Register(db, RegisterInput{Username: "a", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)
	assert.NotEqual(t, "p1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("p1")))
}

func TestRegister_MissingFields(t *testing.T) {
	db := setupAuthDB(t)

	_, err := Register(db, RegisterInput{Username: "a", Email: "", Password: "p1"})
	assert.ErrorIs(t, err, ErrFieldsRequired)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	db := setupAuthDB(t)

	_, err := Register(db, RegisterInput{Username: "a", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = Register(db, RegisterInput{Username: "a", Email: "other@x.com", Password: "p2"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupAuthDB(t)

	_, err := Register(db, RegisterInput{Username: "a", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = Register(db, RegisterInput{Username: "b", Email: "a@x.com", Password: "p2"})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupAuthDB(t)
	_, err := Register(db, RegisterInput{Username: "a", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	_, err = Login(db, LoginInput{Username: "a", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	db := setupAuthDB(t)

	// Same error as a wrong password, so callers cannot probe for usernames.
	_, err := Login(db, LoginInput{Username: "ghost", Password: "p1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	db := setupAuthDB(t)
	registered, err := Register(db, RegisterInput{Username: "a", Email: "a@x.com", Password: "p1"})
	require.NoError(t, err)

	u, err := Login(db, LoginInput{Username: "a", Password: "p1"})
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, u.UserID)
}
