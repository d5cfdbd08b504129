package adminpanelauthhandler

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"maintenance-backend/config"
	"maintenance-backend/db/testdb"
	adminpanelhandler "maintenance-backend/lib/admin-panel"
	adminpaneluserstore "maintenance-backend/lib/admin-panel/store"
	adminpanelapimodels "maintenance-backend/models/api/admin-panel"
)

func TestLogin(t *testing.T) {
	if config.Conf == nil {
		config.Conf = &config.Configuration{}
	}
	config.Conf.Admin.JWTSecret = "test-secret"
	config.Conf.Admin.JWTExpireInSec = 3600

	store := adminpaneluserstore.NewInstance(testdb.New(t))
	userID, err := adminpanelhandler.NewHandlerWithStore(store).CreateUser(adminpanelapimodels.User{
		Email: "admin@example.com", FirstName: "Ann", LastName: "Lee", Password: "secret-pass",
	})
	require.NoError(t, err)
	h := NewHandlerWithStore(store)

	t.Run("успешный вход", func(t *testing.T) {
		resp, err := h.Login("admin@example.com", "secret-pass")
		require.NoError(t, err)
		require.Equal(t, 3600, resp.ExpiresIn)

		token, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		require.Equal(t, userID, claims["sub"])
		require.Equal(t, "Ann Lee", claims["name"])

		rec, err := store.GetByID(userID)
		require.NoError(t, err)
		require.NotNil(t, rec.LastLogin)
	})
	t.Run("неверный пароль", func(t *testing.T) {
		_, err := h.Login("admin@example.com", "wrong-pass")
		require.ErrorIs(t, err, ErrBadCredentials)
	})
	t.Run("неизвестная почта", func(t *testing.T) {
		_, err := h.Login("nobody@example.com", "secret-pass")
		require.ErrorIs(t, err, ErrBadCredentials)
	})
}
